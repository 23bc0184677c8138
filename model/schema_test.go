package model

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			parsed, err := ParseVariant(string(v))
			require.NoError(t, err)
			assert.Equal(t, v, parsed)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseVariant("ELEVATORS")
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseVariant("")
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})
}

func TestCollections(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Variants() {
		coll, err := v.Collection()
		require.NoError(t, err)
		assert.False(t, seen[coll], "collection %q assigned twice", coll)
		seen[coll] = true

		assert.NotEmpty(t, v.Prefix())
		assert.NotEmpty(t, v.Label())
	}
}

func TestEmptyItem(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			item, err := EmptyItem(v, "local-1")
			require.NoError(t, err)
			assert.Equal(t, "local-1", item.ItemID())
		})
	}

	t.Run("enum fields start unset", func(t *testing.T) {
		item, err := EmptyItem(FireCabinets, "x")
		require.NoError(t, err)
		cabinet := item.(CabinetItem)
		assert.Empty(t, cabinet.State)
		assert.Empty(t, cabinet.Valve)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := EmptyItem(Variant("NOPE"), "x")
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})
}

func TestFields(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			defs, err := Fields(v)
			require.NoError(t, err)
			require.NotEmpty(t, defs)
			for _, def := range defs {
				assert.NotEmpty(t, def.Name)
				assert.NotEmpty(t, def.Label)
				if def.Kind == KindSelect {
					assert.NotEmpty(t, def.Options, "select %q without options", def.Name)
				}
			}
		})
	}
}

func TestNewConsecutive(t *testing.T) {
	re := regexp.MustCompile(`^EXT-[A-Z0-9]{4}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, NewConsecutive(Extinguishers))
	}
	assert.Regexp(t, `^INS-[A-Z0-9]{4}$`, NewConsecutive(SafetyConditions))
}

func TestValidate(t *testing.T) {
	item, err := EmptyItem(FireCabinets, "1")
	require.NoError(t, err)

	t.Run("valid checklist", func(t *testing.T) {
		ins := Inspection{
			Variant:       FireCabinets,
			BuildingName:  "Torre Central",
			InspectorName: "Carlos",
			Items:         []Item{item},
		}
		assert.NoError(t, ins.Validate())
	})

	t.Run("missing building name", func(t *testing.T) {
		ins := Inspection{
			Variant:       FireCabinets,
			InspectorName: "Carlos",
			Items:         []Item{item},
		}
		assert.ErrorIs(t, ins.Validate(), ErrValidation)
	})

	t.Run("missing inspector name", func(t *testing.T) {
		ins := Inspection{
			Variant:      FireCabinets,
			BuildingName: "Torre Central",
			Items:        []Item{item},
		}
		assert.ErrorIs(t, ins.Validate(), ErrValidation)
	})

	t.Run("no items", func(t *testing.T) {
		ins := Inspection{
			Variant:       FireCabinets,
			BuildingName:  "Torre Central",
			InspectorName: "Carlos",
		}
		assert.ErrorIs(t, ins.Validate(), ErrValidation)
	})

	t.Run("findings need no building name", func(t *testing.T) {
		ins := Inspection{
			Variant: SafetyConditions,
			Items:   []Item{Finding{ID: "1", Area: "Sótano"}},
		}
		assert.NoError(t, ins.Validate())
	})

	t.Run("work permit needs permit details", func(t *testing.T) {
		ins := Inspection{
			Variant: WorkPermits,
			Items:   []Item{WorkerItem{ID: "1", Name: "Pedro"}},
		}
		assert.ErrorIs(t, ins.Validate(), ErrValidation)

		ins.Permit = &PermitDetails{ContractorCompany: "Alturas SAS"}
		assert.NoError(t, ins.Validate())
	})

	t.Run("unknown variant", func(t *testing.T) {
		ins := Inspection{Variant: Variant("NOPE"), Items: []Item{item}}
		assert.ErrorIs(t, ins.Validate(), ErrUnknownVariant)
	})
}

func TestInspectionJSON(t *testing.T) {
	t.Run("checklist items travel under items", func(t *testing.T) {
		ins := Inspection{
			Variant:     FireCabinets,
			Consecutive: "GAB-A1B2",
			Items: []Item{
				CabinetItem{ID: "1", Number: "G-01", State: "Bueno"},
			},
		}
		data, err := json.Marshal(ins)
		require.NoError(t, err)

		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Contains(t, doc, "items")
		assert.NotContains(t, doc, "findings")

		decoded := Inspection{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Items, 1)
		cabinet := decoded.Items[0].(CabinetItem)
		assert.Equal(t, "G-01", cabinet.Number)
		assert.Equal(t, "Bueno", cabinet.State)
	})

	t.Run("findings travel under findings", func(t *testing.T) {
		ins := Inspection{
			Variant:     SafetyConditions,
			Consecutive: "INS-C3D4",
			Items: []Item{
				Finding{ID: "1", Area: "Parqueadero", DangerType: "Físico", RiskLevel: "Alto"},
			},
		}
		data, err := json.Marshal(ins)
		require.NoError(t, err)

		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Contains(t, doc, "findings")
		assert.NotContains(t, doc, "items")
		assert.Contains(t, string(doc["findings"]), `"dangerType"`)

		decoded := Inspection{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Items, 1)
		finding := decoded.Items[0].(Finding)
		assert.Equal(t, "Alto", finding.RiskLevel)
	})

	t.Run("workers and permit travel together", func(t *testing.T) {
		ins := Inspection{
			Variant:     WorkPermits,
			Consecutive: "WP-E5F6",
			Permit:      &PermitDetails{ContractorCompany: "Alturas SAS", WorkerCount: 2},
			Items: []Item{
				WorkerItem{ID: "1", Name: "Pedro", CC: "123"},
				WorkerItem{ID: "2", Name: "Juan", CC: "456"},
			},
		}
		data, err := json.Marshal(ins)
		require.NoError(t, err)

		decoded := Inspection{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.NotNil(t, decoded.Permit)
		assert.Equal(t, "Alturas SAS", decoded.Permit.ContractorCompany)
		require.Len(t, decoded.Items, 2)
		assert.Equal(t, "Juan", decoded.Items[1].(WorkerItem).Name)
	})

	t.Run("decode with preset variant and no variant field", func(t *testing.T) {
		doc := `{"consecutive":"SIG-XY12","items":[{"id":"1","signalType":"Evacuación","quantity":3}]}`
		decoded := Inspection{Variant: Signage}
		require.NoError(t, json.Unmarshal([]byte(doc), &decoded))
		require.Len(t, decoded.Items, 1)
		sign := decoded.Items[0].(SignageItem)
		assert.Equal(t, "Evacuación", sign.SignalType)
		assert.Equal(t, 3, sign.Quantity)
	})

	t.Run("decode without variant fails", func(t *testing.T) {
		decoded := Inspection{}
		err := json.Unmarshal([]byte(`{"consecutive":"X-0000"}`), &decoded)
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})
}

func TestDisplayFields(t *testing.T) {
	t.Run("name falls back", func(t *testing.T) {
		assert.Equal(t, "Torre A", Inspection{BuildingName: "Torre A", EstablishmentName: "Local B"}.DisplayName())
		assert.Equal(t, "Local B", Inspection{EstablishmentName: "Local B"}.DisplayName())
		assert.Equal(t, "Sin Nombre", Inspection{}.DisplayName())
	})

	t.Run("observations fall back", func(t *testing.T) {
		fields := CabinetItem{Number: "G-01"}.Fields()
		last := fields[len(fields)-1]
		assert.Equal(t, "Observaciones", last.Label)
		assert.Equal(t, "Sin novedades", last.Value)
	})
}
