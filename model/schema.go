package model

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant = errors.New("unknown inspection variant")
	ErrValidation     = errors.New("invalid inspection")
)

// Option sets offered by the checklist forms. Values are stored verbatim,
// so these literals double as the storage vocabulary.
var (
	CheckOptions  = []string{"Buen Estado", "Mal Estado", "No Aplica", "No se encontró"}
	CabinetStates = []string{"Bueno", "Malo", "No aplica"}
	KitStatus     = []string{"Buen Estado", "Mal Estado", "Surtir Elemento"}
	YesNo         = []string{"Si", "No"}
	YesNoChange   = []string{"Si", "No", "Para cambio"}
	FoundStatus   = []string{"Buen Estado", "Mal Estado", "No se encuentra"}
	Acceptable    = []string{"Aceptable", "No Aceptable"}
	SignalTypes   = []string{"Evacuación", "Prohibitiva", "Informativa", "Obligación", "Contra incendios"}
	DangerTypes   = []string{"Físico", "Químico", "Biológico", "Psicosocial", "Biomecánicos", "Condiciones de Seguridad", "Fenómenos Naturales"}
	RiskLevels    = []string{"Bajo", "Medio", "Alto", "Crítico"}
	ActionTypes   = []string{"Eliminación", "Sustitución", "Controles de Ingeniería", "Controles Administrativos", "EPP"}
)

// FieldKind tells a form renderer what input to offer for a field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindLong   FieldKind = "textarea"
	KindDate   FieldKind = "date"
	KindNumber FieldKind = "number"
	KindSelect FieldKind = "select"
	KindPhoto  FieldKind = "photo"
)

// FieldDef describes one item field of a variant's form.
type FieldDef struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

func sel(name, label string, options []string) FieldDef {
	return FieldDef{Name: name, Label: label, Kind: KindSelect, Options: options}
}

func text(name, label string) FieldDef {
	return FieldDef{Name: name, Label: label, Kind: KindText}
}

// Fields returns the form field metadata for a variant's items, in the
// order the form presents them.
func Fields(v Variant) ([]FieldDef, error) {
	switch v {
	case FireCabinets:
		return []FieldDef{
			text("number", "No. Gabinete"),
			text("location", "Ubicación"),
			sel("state", "Estado Gabinete", CabinetStates),
			sel("glass", "Vidrio", CabinetStates),
			sel("axe", "Hacha", CabinetStates),
			sel("hose", "Manguera", CabinetStates),
			sel("nozzle", "Boquilla", CabinetStates),
			sel("spanner", "Llave Spanner", CabinetStates),
			sel("support", "Soporte Mangueras", CabinetStates),
			sel("valve", "Válvula", CabinetStates),
			{Name: "obs", Label: "Observaciones", Kind: KindLong},
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case Extinguishers:
		return []FieldDef{
			text("area", "Área"),
			text("position", "Posición"),
			text("id_ext", "Identificación"),
			text("capacity", "Capacidad"),
			text("agent_type", "Agente"),
			text("class_ext", "Clase"),
			{Name: "last_recharge", Label: "Última Recarga", Kind: KindDate},
			{Name: "next_recharge", Label: "Próxima Recarga", Kind: KindDate},
			sel("signage", "Señalización", CheckOptions),
			sel("labels", "Etiquetas", CheckOptions),
			sel("chemical_label", "Rótulo Químico", CheckOptions),
			sel("seal", "Sello Seg.", CheckOptions),
			sel("paint", "Pintura", CheckOptions),
			sel("visibility", "Acceso Visibilidad", CheckOptions),
			sel("corrosion", "Corrosión", CheckOptions),
			sel("manometer", "Manómetro", CheckOptions),
			sel("agent_state", "Agente Extintor", CheckOptions),
			sel("pressure", "Presión", CheckOptions),
			sel("pin", "Pin o Seguro", CheckOptions),
			sel("valve", "Válvula Palanca", CheckOptions),
			sel("trigger", "Palanca de Descarga", CheckOptions),
			sel("handle", "Manija Traslado", CheckOptions),
			sel("hose", "Manguera", CheckOptions),
			sel("nozzle", "Boquilla / Cono", CheckOptions),
			sel("cylinder", "Cilindro", CheckOptions),
			sel("siphon", "Tubo Sifon", CheckOptions),
			{Name: "obs", Label: "Observaciones", Kind: KindLong},
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case Stretchers:
		return []FieldDef{
			text("area", "Área"),
			text("location", "Ubicación"),
			sel("visible", "¿Visible?", YesNo),
			sel("signaled", "¿Señalizada?", YesNo),
			sel("access", "Fácil acceso", YesNo),
			sel("straps", "Correas seg.", YesNoChange),
			sel("cervical_immobilizer", "Inmov. cervical", FoundStatus),
			sel("limbs_immobilizer", "Inmov. miembros", FoundStatus),
			sel("support_state", "Estado Soporte", FoundStatus),
			sel("material_state", "Estado Material", FoundStatus),
			sel("cervical_cleanliness", "Higiene Inmov. Cervical", Acceptable),
			sel("limbs_cleanliness", "Higiene Inmov. Miembros", Acceptable),
			sel("stretcher_cleanliness", "Higiene Camilla", Acceptable),
			{Name: "obs", Label: "Observaciones", Kind: KindLong},
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case FirstAidKits:
		return []FieldDef{
			text("area", "Área"),
			text("location", "Ubicación"),
			sel("gauze_clean", "Gasas Limpias X 20", KitStatus),
			sel("tape_cloth", "Esparadrapo 4\"", KitStatus),
			sel("tongue_depressor", "Bajalenguas X 20", KitStatus),
			sel("latex_gloves", "Guantes Latex X 100", KitStatus),
			sel("elastic_bandage_2", "Venda Elástica 2\"", KitStatus),
			sel("elastic_bandage_3", "Venda Elástica 3\"", KitStatus),
			sel("elastic_bandage_5", "Venda Elástica 5\"", KitStatus),
			sel("cotton_bandage_3", "Venda Algodón 3\"", KitStatus),
			sel("cotton_bandage_5", "Venda Algodón 5\"", KitStatus),
			sel("iodopovidone", "Yodopovidona 120ml", KitStatus),
			sel("saline_solution", "Saline 250/500cc", KitStatus),
			sel("thermometer", "Termómetro", KitStatus),
			sel("alcohol", "Alcohol 275ml", KitStatus),
			{Name: "obs", Label: "Observaciones", Kind: KindLong},
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case Signage:
		return []FieldDef{
			text("area", "Area"),
			text("location", "Ubicación"),
			sel("signalType", "Tipo de Señal", SignalTypes),
			{Name: "quantity", Label: "Cantidad", Kind: KindNumber},
			sel("state", "Estado", CheckOptions),
			{Name: "obs", Label: "Observaciones", Kind: KindLong},
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case SafetyConditions:
		return []FieldDef{
			text("area", "Área"),
			text("location", "Ubicación"),
			sel("dangerType", "Tipo de Peligro", DangerTypes),
			{Name: "description", Label: "Descripción Condición Encontrada", Kind: KindLong},
			sel("actionType", "Tipo de Acción", ActionTypes),
			{Name: "actionImplementation", Label: "Descripción Acción a Implementar", Kind: KindLong},
			text("responsiblePerson", "Responsable"),
			sel("riskLevel", "Nivel de Riesgo", RiskLevels),
			{Name: "photo1", Label: "Foto 1", Kind: KindPhoto},
			{Name: "photo2", Label: "Foto 2", Kind: KindPhoto},
		}, nil
	case WorkPermits:
		return []FieldDef{
			text("name", "Nombre"),
			text("cc", "Cédula"),
			text("arl", "ARL"),
			text("eps", "EPS"),
			text("profession", "Profesión"),
			text("activity", "Actividad"),
			text("equipment", "Equipos"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// EmptyItem builds a blank line item for the variant, carrying the given
// local id. Enum fields start unset so the form forces a choice.
func EmptyItem(v Variant, id string) (Item, error) {
	switch v {
	case FireCabinets:
		return CabinetItem{ID: id}, nil
	case Extinguishers:
		return ExtinguisherItem{ID: id}, nil
	case Stretchers:
		return StretcherItem{ID: id}, nil
	case FirstAidKits:
		return FirstAidItem{ID: id}, nil
	case Signage:
		return SignageItem{ID: id}, nil
	case SafetyConditions:
		return Finding{ID: id}, nil
	case WorkPermits:
		return WorkerItem{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// DecodeItems unmarshals a raw item array into the variant's item type.
func DecodeItems(v Variant, raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	unpack := func(dst any, pick func(i int) Item, n func() int) ([]Item, error) {
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, err
		}
		items := make([]Item, n())
		for i := range items {
			items[i] = pick(i)
		}
		return items, nil
	}

	switch v {
	case FireCabinets:
		var xs []CabinetItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case Extinguishers:
		var xs []ExtinguisherItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case Stretchers:
		var xs []StretcherItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case FirstAidKits:
		var xs []FirstAidItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case Signage:
		var xs []SignageItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case SafetyConditions:
		var xs []Finding
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	case WorkPermits:
		var xs []WorkerItem
		return unpack(&xs, func(i int) Item { return xs[i] }, func() int { return len(xs) })
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// Validate checks an inspection is complete enough to persist.
func (ins Inspection) Validate() error {
	if _, err := ins.Variant.Collection(); err != nil {
		return err
	}
	if len(ins.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	if ins.Variant.Checklist() {
		if ins.BuildingName == "" {
			return fmt.Errorf("%w: building name is required", ErrValidation)
		}
		if ins.InspectorName == "" {
			return fmt.Errorf("%w: inspector name is required", ErrValidation)
		}
	}
	if ins.Variant == WorkPermits && ins.Permit == nil {
		return fmt.Errorf("%w: permit details are required", ErrValidation)
	}
	return nil
}

const consecutiveCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewConsecutive mints a record code like "EXT-7K2Q". Codes are random,
// not sequential; collisions within a tenant are tolerated upstream.
func NewConsecutive(v Variant) string {
	var buf [4]byte
	rand.Read(buf[:])
	for i, b := range buf {
		buf[i] = consecutiveCharset[int(b)%len(consecutiveCharset)]
	}
	return v.Prefix() + "-" + string(buf[:])
}
