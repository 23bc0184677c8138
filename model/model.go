package model

import (
	"fmt"
	"strconv"
	"time"
)

// Variant identifies one of the inspection modules. Every variant owns its
// own collection in the record store and its own line item shape.
type Variant string

const (
	SafetyConditions Variant = "SAFETY_CONDITIONS"
	FireCabinets     Variant = "FIRE_CABINETS"
	Extinguishers    Variant = "EXTINGUISHERS"
	Stretchers       Variant = "STRETCHERS"
	FirstAidKits     Variant = "FIRST_AID_KITS"
	Signage          Variant = "SIGNAGE"
	WorkPermits      Variant = "WORK_PERMITS"
)

// Variants returns all known variants in sidebar order.
func Variants() []Variant {
	return []Variant{
		SafetyConditions,
		FireCabinets,
		Extinguishers,
		Stretchers,
		FirstAidKits,
		Signage,
		WorkPermits,
	}
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, err := v.Collection(); err != nil {
		return "", err
	}
	return v, nil
}

// Collection maps a variant to its record store collection name. Unknown
// variants have no collection and must fail here, never fall through.
func (v Variant) Collection() (string, error) {
	switch v {
	case SafetyConditions:
		return "safety_inspections", nil
	case FireCabinets:
		return "fire_cabinets", nil
	case Extinguishers:
		return "extinguishers", nil
	case Stretchers:
		return "stretchers", nil
	case FirstAidKits:
		return "first_aid_kits", nil
	case Signage:
		return "signage", nil
	case WorkPermits:
		return "work_permits", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// Prefix is the consecutive code prefix for the variant.
func (v Variant) Prefix() string {
	switch v {
	case SafetyConditions:
		return "INS"
	case FireCabinets:
		return "GAB"
	case Extinguishers:
		return "EXT"
	case Stretchers:
		return "CAM"
	case FirstAidKits:
		return "BOT"
	case Signage:
		return "SIG"
	case WorkPermits:
		return "WP"
	default:
		return "SST"
	}
}

// Label is the short module name used in report subtitles.
func (v Variant) Label() string {
	switch v {
	case SafetyConditions:
		return "SEGURIDAD"
	case FireCabinets:
		return "GABINETES"
	case Extinguishers:
		return "EXTINTORES"
	case Stretchers:
		return "CAMILLAS"
	case FirstAidKits:
		return "BOTIQUÍN"
	case Signage:
		return "SEÑALIZACIÓN"
	case WorkPermits:
		return "PERMISOS DE TRABAJO"
	default:
		return "INSPECCIÓN"
	}
}

// Checklist reports whether the variant is a fixed-checklist form, as
// opposed to the free-form safety findings and work permits.
func (v Variant) Checklist() bool {
	switch v {
	case FireCabinets, Extinguishers, Stretchers, FirstAidKits, Signage:
		return true
	}
	return false
}

// itemsKey is the JSON/DB key under which the variant stores its line
// items. Safety inspections predate the others and use "findings".
func (v Variant) itemsKey() (string, error) {
	if _, err := v.Collection(); err != nil {
		return "", err
	}
	switch v {
	case SafetyConditions:
		return "findings", nil
	case WorkPermits:
		return "workers", nil
	default:
		return "items", nil
	}
}

// ItemsColumn is the record store column holding the serialized items.
func (v Variant) ItemsColumn() (string, error) {
	return v.itemsKey()
}

// Inspection is the envelope shared by all variants. Building and
// inspector identity are denormalized copies taken at submission time; the
// tenant profile may change later without rewriting history.
type Inspection struct {
	ID                  int64
	Variant             Variant
	Consecutive         string
	ClientCode          string
	Date                string
	BuildingName        string
	EstablishmentName   string
	Nit                 string
	Address             string
	LegalRepresentative string
	InspectorName       string
	InspectorEmail      string
	Items               []Item
	SignatureURL        string
	Permit              *PermitDetails
	CreatedAt           time.Time
}

// DisplayName falls back through the envelope name fields.
func (ins Inspection) DisplayName() string {
	if ins.BuildingName != "" {
		return ins.BuildingName
	}
	if ins.EstablishmentName != "" {
		return ins.EstablishmentName
	}
	return "Sin Nombre"
}

// DisplayDate prefers the explicit inspection date over the persistence
// timestamp truncated to a calendar date.
func (ins Inspection) DisplayDate() string {
	if ins.Date != "" {
		return ins.Date
	}
	if !ins.CreatedAt.IsZero() {
		return ins.CreatedAt.Format("2006-01-02")
	}
	return ""
}

// Field is one label/value pair of a line item, in report display order.
type Field struct {
	Label string
	Value string
}

// Item is one inspected unit or finding inside an envelope.
type Item interface {
	ItemID() string
	Photos() (first, second string)
	Fields() []Field
}

func orElse(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CabinetItem is one fire hose cabinet.
type CabinetItem struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Location string `json:"location"`
	State    string `json:"state"`
	Glass    string `json:"glass"`
	Axe      string `json:"axe"`
	Hose     string `json:"hose"`
	Nozzle   string `json:"nozzle"`
	Spanner  string `json:"spanner"`
	Support  string `json:"support"`
	Valve    string `json:"valve"`
	Obs      string `json:"obs"`
	Photo1   string `json:"photo1,omitempty"`
	Photo2   string `json:"photo2,omitempty"`
}

func (i CabinetItem) ItemID() string           { return i.ID }
func (i CabinetItem) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i CabinetItem) Fields() []Field {
	return []Field{
		{"No. Gabinete", i.Number},
		{"Ubicación", i.Location},
		{"Estado Gabinete", i.State},
		{"Vidrio", i.Glass},
		{"Hacha", i.Axe},
		{"Manguera", i.Hose},
		{"Boquilla", i.Nozzle},
		{"Llave Spanner", i.Spanner},
		{"Soporte Mangueras", i.Support},
		{"Válvula", i.Valve},
		{"Observaciones", orElse(i.Obs, "Sin novedades")},
	}
}

// ExtinguisherItem is one portable extinguisher.
type ExtinguisherItem struct {
	ID            string `json:"id"`
	Area          string `json:"area"`
	Position      string `json:"position"`
	IDExt         string `json:"id_ext"`
	Capacity      string `json:"capacity"`
	AgentType     string `json:"agent_type"`
	ClassExt      string `json:"class_ext"`
	LastRecharge  string `json:"last_recharge"`
	NextRecharge  string `json:"next_recharge"`
	Signage       string `json:"signage"`
	Labels        string `json:"labels"`
	ChemicalLabel string `json:"chemical_label"`
	Seal          string `json:"seal"`
	Paint         string `json:"paint"`
	Visibility    string `json:"visibility"`
	Corrosion     string `json:"corrosion"`
	Manometer     string `json:"manometer"`
	AgentState    string `json:"agent_state"`
	Pressure      string `json:"pressure"`
	Pin           string `json:"pin"`
	Valve         string `json:"valve"`
	Trigger       string `json:"trigger"`
	Handle        string `json:"handle"`
	Hose          string `json:"hose"`
	Nozzle        string `json:"nozzle"`
	Cylinder      string `json:"cylinder"`
	Siphon        string `json:"siphon"`
	Obs           string `json:"obs"`
	Photo1        string `json:"photo1,omitempty"`
	Photo2        string `json:"photo2,omitempty"`
}

func (i ExtinguisherItem) ItemID() string           { return i.ID }
func (i ExtinguisherItem) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i ExtinguisherItem) Fields() []Field {
	return []Field{
		{"Área", i.Area},
		{"Posición", i.Position},
		{"Identificación", i.IDExt},
		{"Capacidad", i.Capacity},
		{"Agente", i.AgentType},
		{"Clase", i.ClassExt},
		{"Última Recarga", i.LastRecharge},
		{"Próxima Recarga", i.NextRecharge},
		{"Señalización", i.Signage},
		{"Etiquetas", i.Labels},
		{"Rótulo Químico", i.ChemicalLabel},
		{"Sello Seg.", i.Seal},
		{"Pintura", i.Paint},
		{"Acceso Visibilidad", i.Visibility},
		{"Corrosión", i.Corrosion},
		{"Manómetro", i.Manometer},
		{"Agente Extintor", i.AgentState},
		{"Presión", i.Pressure},
		{"Pin o Seguro", i.Pin},
		{"Válvula Palanca", i.Valve},
		{"Palanca de Descarga", i.Trigger},
		{"Manija Traslado", i.Handle},
		{"Manguera", i.Hose},
		{"Boquilla / Cono", i.Nozzle},
		{"Cilindro", i.Cylinder},
		{"Tubo Sifon", i.Siphon},
		{"Observaciones", orElse(i.Obs, "Sin novedades")},
	}
}

// StretcherItem is one emergency stretcher.
type StretcherItem struct {
	ID                   string `json:"id"`
	Area                 string `json:"area"`
	Location             string `json:"location"`
	Visible              string `json:"visible"`
	Signaled             string `json:"signaled"`
	Access               string `json:"access"`
	Straps               string `json:"straps"`
	CervicalImmobilizer  string `json:"cervical_immobilizer"`
	LimbsImmobilizer     string `json:"limbs_immobilizer"`
	SupportState         string `json:"support_state"`
	MaterialState        string `json:"material_state"`
	CervicalCleanliness  string `json:"cervical_cleanliness"`
	LimbsCleanliness     string `json:"limbs_cleanliness"`
	StretcherCleanliness string `json:"stretcher_cleanliness"`
	Obs                  string `json:"obs"`
	Photo1               string `json:"photo1,omitempty"`
	Photo2               string `json:"photo2,omitempty"`
}

func (i StretcherItem) ItemID() string           { return i.ID }
func (i StretcherItem) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i StretcherItem) Fields() []Field {
	return []Field{
		{"Área", i.Area},
		{"Ubicación", i.Location},
		{"¿Visible?", i.Visible},
		{"¿Señalizada?", i.Signaled},
		{"Fácil acceso", i.Access},
		{"Correas seg.", i.Straps},
		{"Inmov. cervical", i.CervicalImmobilizer},
		{"Inmov. miembros", i.LimbsImmobilizer},
		{"Estado Soporte", i.SupportState},
		{"Estado Material", i.MaterialState},
		{"Higiene Inmov. Cervical", i.CervicalCleanliness},
		{"Higiene Inmov. Miembros", i.LimbsCleanliness},
		{"Higiene Camilla", i.StretcherCleanliness},
		{"Observaciones", orElse(i.Obs, "Sin novedades")},
	}
}

// FirstAidItem is one first aid kit.
type FirstAidItem struct {
	ID              string `json:"id"`
	Area            string `json:"area"`
	Location        string `json:"location"`
	GauzeClean      string `json:"gauze_clean"`
	TapeCloth       string `json:"tape_cloth"`
	TongueDepressor string `json:"tongue_depressor"`
	LatexGloves     string `json:"latex_gloves"`
	ElasticBandage2 string `json:"elastic_bandage_2"`
	ElasticBandage3 string `json:"elastic_bandage_3"`
	ElasticBandage5 string `json:"elastic_bandage_5"`
	CottonBandage3  string `json:"cotton_bandage_3"`
	CottonBandage5  string `json:"cotton_bandage_5"`
	Iodopovidone    string `json:"iodopovidone"`
	SalineSolution  string `json:"saline_solution"`
	Thermometer     string `json:"thermometer"`
	Alcohol         string `json:"alcohol"`
	Obs             string `json:"obs"`
	Photo1          string `json:"photo1,omitempty"`
	Photo2          string `json:"photo2,omitempty"`
}

func (i FirstAidItem) ItemID() string           { return i.ID }
func (i FirstAidItem) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i FirstAidItem) Fields() []Field {
	return []Field{
		{"Área", i.Area},
		{"Ubicación", i.Location},
		{"Gasas Limpias X 20", i.GauzeClean},
		{"Esparadrapo 4\"", i.TapeCloth},
		{"Bajalenguas X 20", i.TongueDepressor},
		{"Guantes Latex X 100", i.LatexGloves},
		{"Venda Elástica 2\"", i.ElasticBandage2},
		{"Venda Elástica 3\"", i.ElasticBandage3},
		{"Venda Elástica 5\"", i.ElasticBandage5},
		{"Venda Algodón 3\"", i.CottonBandage3},
		{"Venda Algodón 5\"", i.CottonBandage5},
		{"Yodopovidona 120ml", i.Iodopovidone},
		{"Saline 250/500cc", i.SalineSolution},
		{"Termómetro", i.Thermometer},
		{"Alcohol 275ml", i.Alcohol},
		{"Observaciones", orElse(i.Obs, "Sin novedades")},
	}
}

// SignageItem is one batch of safety signs. Note signalType keeps its
// legacy camelCase key in storage.
type SignageItem struct {
	ID         string `json:"id"`
	Area       string `json:"area"`
	Location   string `json:"location"`
	SignalType string `json:"signalType"`
	Quantity   int    `json:"quantity"`
	State      string `json:"state"`
	Obs        string `json:"obs"`
	Photo1     string `json:"photo1,omitempty"`
	Photo2     string `json:"photo2,omitempty"`
}

func (i SignageItem) ItemID() string           { return i.ID }
func (i SignageItem) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i SignageItem) Fields() []Field {
	return []Field{
		{"Area", i.Area},
		{"Ubicación", i.Location},
		{"Tipo de Señal", i.SignalType},
		{"Cantidad", strconv.Itoa(i.Quantity)},
		{"Estado", i.State},
		{"Observaciones", orElse(i.Obs, "Sin novedades")},
	}
}

// Finding is one safety condition finding. Findings keep the camelCase
// keys the legacy rows were stored with.
type Finding struct {
	ID                   string `json:"id"`
	Area                 string `json:"area"`
	Location             string `json:"location,omitempty"`
	DangerType           string `json:"dangerType"`
	Description          string `json:"description"`
	ActionType           string `json:"actionType"`
	ActionImplementation string `json:"actionImplementation"`
	ResponsiblePerson    string `json:"responsiblePerson"`
	RiskLevel            string `json:"riskLevel"`
	Photo1               string `json:"photo1,omitempty"`
	Photo2               string `json:"photo2,omitempty"`
}

func (i Finding) ItemID() string           { return i.ID }
func (i Finding) Photos() (string, string) { return i.Photo1, i.Photo2 }
func (i Finding) Fields() []Field {
	return []Field{
		{"Área", i.Area},
		{"Ubicación", orElse(i.Location, i.Area)},
		{"Tipo de Peligro", i.DangerType},
		{"Descripción Condición Encontrada", i.Description},
		{"Tipo de Acción", i.ActionType},
		{"Descripción Acción a Implementar", i.ActionImplementation},
		{"Responsable", i.ResponsiblePerson},
		{"Nivel de Riesgo", i.RiskLevel},
	}
}

// WorkerItem is one worker covered by a work permit.
type WorkerItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CC          string `json:"cc"`
	ARL         string `json:"arl"`
	EPS         string `json:"eps"`
	Profession  string `json:"profession"`
	Activity    string `json:"activity"`
	Equipment   string `json:"equipment"`
	SupportsPDF string `json:"supports_pdf,omitempty"`
	CVPDF       string `json:"cv_pdf,omitempty"`
}

func (i WorkerItem) ItemID() string           { return i.ID }
func (i WorkerItem) Photos() (string, string) { return "", "" }
func (i WorkerItem) Fields() []Field {
	return []Field{
		{"Nombre", i.Name},
		{"Cédula", i.CC},
		{"ARL", i.ARL},
		{"EPS", i.EPS},
		{"Profesión", i.Profession},
		{"Actividad", i.Activity},
		{"Equipos", i.Equipment},
	}
}

// PermitDetails is the work permit head block, stored alongside the
// envelope for WORK_PERMITS records only.
type PermitDetails struct {
	ContractorCompany      string `json:"contractor_company"`
	ResponsiblePerson      string `json:"responsible_person"`
	WorkDate               string `json:"work_date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	Area                   string `json:"area"`
	Location               string `json:"location"`
	RequiredPermit         string `json:"required_permit"`
	WorkerCount            int    `json:"worker_count"`
	ActivityDescription    string `json:"activity_description"`
	RiskAnalysis           string `json:"risk_analysis,omitempty"`
	SSTResponsibleName     string `json:"sst_responsible_name,omitempty"`
	CompanyResponsibleName string `json:"company_responsible_name,omitempty"`
	CompanyResponsibleCC   string `json:"company_responsible_cc,omitempty"`
}

func (p PermitDetails) Fields() []Field {
	return []Field{
		{"Empresa Contratista", p.ContractorCompany},
		{"Responsable", p.ResponsiblePerson},
		{"Fecha de Trabajo", p.WorkDate},
		{"Hora Inicio", p.StartTime},
		{"Hora Fin", p.EndTime},
		{"Área / Proceso", p.Area},
		{"Ubicación", p.Location},
		{"Permiso Requerido", p.RequiredPermit},
		{"No. Trabajadores", strconv.Itoa(p.WorkerCount)},
		{"Descripción de la Actividad", p.ActivityDescription},
	}
}
