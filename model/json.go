package model

import (
	"encoding/json"
	"time"
)

// envelope is the wire shape shared by all variants. Items travel under a
// variant-dependent key, so they are handled outside the struct tags.
type envelope struct {
	ID                  int64          `json:"id,omitempty"`
	Consecutive         string         `json:"consecutive"`
	ClientCode          string         `json:"client_code,omitempty"`
	Date                string         `json:"date,omitempty"`
	BuildingName        string         `json:"building_name,omitempty"`
	EstablishmentName   string         `json:"establishment_name,omitempty"`
	Nit                 string         `json:"nit,omitempty"`
	Address             string         `json:"address,omitempty"`
	LegalRepresentative string         `json:"legal_representative,omitempty"`
	InspectorName       string         `json:"inspector_name,omitempty"`
	InspectorEmail      string         `json:"inspector_email,omitempty"`
	SignatureURL        string         `json:"signature_url,omitempty"`
	Permit              *PermitDetails `json:"permit,omitempty"`
	CreatedAt           *time.Time     `json:"created_at,omitempty"`
}

func (ins Inspection) envelope() envelope {
	env := envelope{
		ID:                  ins.ID,
		Consecutive:         ins.Consecutive,
		ClientCode:          ins.ClientCode,
		Date:                ins.Date,
		BuildingName:        ins.BuildingName,
		EstablishmentName:   ins.EstablishmentName,
		Nit:                 ins.Nit,
		Address:             ins.Address,
		LegalRepresentative: ins.LegalRepresentative,
		InspectorName:       ins.InspectorName,
		InspectorEmail:      ins.InspectorEmail,
		SignatureURL:        ins.SignatureURL,
		Permit:              ins.Permit,
	}
	if !ins.CreatedAt.IsZero() {
		t := ins.CreatedAt
		env.CreatedAt = &t
	}
	return env
}

// MarshalJSON writes the envelope fields plus the items array under the
// variant's own key ("items", "findings" or "workers").
func (ins Inspection) MarshalJSON() ([]byte, error) {
	key, err := ins.Variant.itemsKey()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(ins.envelope())
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	items := ins.Items
	if items == nil {
		items = []Item{}
	}
	doc[key], err = json.Marshal(items)
	if err != nil {
		return nil, err
	}
	doc["variant"], _ = json.Marshal(ins.Variant)
	return json.Marshal(doc)
}

// UnmarshalJSON needs ins.Variant set beforehand unless the document
// carries its own "variant" field; the items key depends on it.
func (ins *Inspection) UnmarshalJSON(data []byte) error {
	var head struct {
		envelope
		Variant Variant `json:"variant"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.Variant != "" {
		ins.Variant = head.Variant
	}

	key, err := ins.Variant.itemsKey()
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	items, err := DecodeItems(ins.Variant, doc[key])
	if err != nil {
		return err
	}

	env := head.envelope
	ins.ID = env.ID
	ins.Consecutive = env.Consecutive
	ins.ClientCode = env.ClientCode
	ins.Date = env.Date
	ins.BuildingName = env.BuildingName
	ins.EstablishmentName = env.EstablishmentName
	ins.Nit = env.Nit
	ins.Address = env.Address
	ins.LegalRepresentative = env.LegalRepresentative
	ins.InspectorName = env.InspectorName
	ins.InspectorEmail = env.InspectorEmail
	ins.SignatureURL = env.SignatureURL
	ins.Permit = env.Permit
	ins.Items = items
	if env.CreatedAt != nil {
		ins.CreatedAt = *env.CreatedAt
	}
	return nil
}
