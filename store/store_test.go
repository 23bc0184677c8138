package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crodriguezm/sgsst/config"
	"github.com/crodriguezm/sgsst/database"
	"github.com/crodriguezm/sgsst/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestInsertAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ins := model.Inspection{
		Variant:       model.Extinguishers,
		Consecutive:   "EXT-AB12",
		ClientCode:    "CLI-42",
		Date:          "2026-08-20",
		BuildingName:  "Torre Central",
		InspectorName: "Carlos Ruiz",
		Items: []model.Item{
			model.ExtinguisherItem{ID: "1", IDExt: "E-101", AgentType: "ABC", Signage: "Buen Estado"},
		},
		SignatureURL: "data:image/jpeg;base64,QUJD",
	}
	require.NoError(t, s.Insert(ctx, &ins))
	assert.NotZero(t, ins.ID)
	assert.False(t, ins.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, model.Extinguishers, ins.ID)
	require.NoError(t, err)
	assert.Equal(t, "EXT-AB12", got.Consecutive)
	assert.Equal(t, "Torre Central", got.BuildingName)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", got.SignatureURL)
	require.Len(t, got.Items, 1)
	ext := got.Items[0].(model.ExtinguisherItem)
	assert.Equal(t, "E-101", ext.IDExt)
	assert.Equal(t, "Buen Estado", ext.Signage)

	t.Run("missing id", func(t *testing.T) {
		_, err := s.GetByID(ctx, model.Extinguishers, 999)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("variants are isolated", func(t *testing.T) {
		_, err := s.GetByID(ctx, model.FireCabinets, ins.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestWorkPermitRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ins := model.Inspection{
		Variant:     model.WorkPermits,
		Consecutive: "WP-C0DE",
		Permit: &model.PermitDetails{
			ContractorCompany: "Alturas SAS",
			RequiredPermit:    "Trabajo en Alturas",
			WorkerCount:       2,
		},
		Items: []model.Item{
			model.WorkerItem{ID: "1", Name: "Pedro Pérez", CC: "123"},
			model.WorkerItem{ID: "2", Name: "Juan Díaz", CC: "456"},
		},
	}
	require.NoError(t, s.Insert(ctx, &ins))

	got, err := s.GetByID(ctx, model.WorkPermits, ins.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Permit)
	assert.Equal(t, "Alturas SAS", got.Permit.ContractorCompany)
	assert.Equal(t, 2, got.Permit.WorkerCount)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Juan Díaz", got.Items[1].(model.WorkerItem).Name)
}

func TestSelectAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := model.Inspection{
		Variant:     model.Signage,
		Consecutive: "SIG-0001",
		Items:       []model.Item{model.SignageItem{ID: "1", SignalType: "Evacuación"}},
	}
	second := model.Inspection{
		Variant:     model.Signage,
		Consecutive: "SIG-0002",
		Items:       []model.Item{model.SignageItem{ID: "1", SignalType: "Prohibitiva"}},
	}
	require.NoError(t, s.Insert(ctx, &first))
	require.NoError(t, s.Insert(ctx, &second))

	records, err := s.SelectAll(ctx, model.Signage)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SIG-0002", records[0].Consecutive, "newest first")
	assert.Equal(t, "SIG-0001", records[1].Consecutive)

	t.Run("empty collection", func(t *testing.T) {
		records, err := s.SelectAll(ctx, model.Stretchers)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestUpdate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ins := model.Inspection{
		Variant:     model.FireCabinets,
		Consecutive: "GAB-0B0B",
		Items:       []model.Item{model.CabinetItem{ID: "1", Number: "G-01", State: "Malo"}},
	}
	require.NoError(t, s.Insert(ctx, &ins))

	ins.Items = []model.Item{
		model.CabinetItem{ID: "1", Number: "G-01", State: "Bueno", Obs: "Vidrio reemplazado"},
	}
	ins.SignatureURL = "data:image/jpeg;base64,REVG"
	ins.Consecutive = "GAB-NOPE"
	require.NoError(t, s.Update(ctx, ins))

	got, err := s.GetByID(ctx, model.FireCabinets, ins.ID)
	require.NoError(t, err)
	cabinet := got.Items[0].(model.CabinetItem)
	assert.Equal(t, "Bueno", cabinet.State)
	assert.Equal(t, "Vidrio reemplazado", cabinet.Obs)
	assert.Equal(t, "data:image/jpeg;base64,REVG", got.SignatureURL)
	assert.Equal(t, "GAB-0B0B", got.Consecutive, "consecutive is immutable")

	t.Run("missing record", func(t *testing.T) {
		ghost := ins
		ghost.ID = 999
		assert.ErrorIs(t, s.Update(ctx, ghost), sql.ErrNoRows)
	})
}

func TestProfiles(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.CreateProfile(ctx, "carlos", "$2a$10$hash", model.RoleUser)
	require.NoError(t, err)
	assert.NotZero(t, id)

	t.Run("defaults", func(t *testing.T) {
		p, err := s.GetProfile(ctx, "carlos")
		require.NoError(t, err)
		assert.Equal(t, "PENDIENTE", p.SubscriptionStatus)
		assert.False(t, p.Active())
	})

	t.Run("tenant edits own fields", func(t *testing.T) {
		p, err := s.GetProfile(ctx, "carlos")
		require.NoError(t, err)
		p.BuildingName = "Conjunto Mirador"
		p.InspectorName = "Carlos Ruiz"
		require.NoError(t, s.UpdateProfile(ctx, p))

		got, err := s.GetProfile(ctx, "carlos")
		require.NoError(t, err)
		assert.Equal(t, "Conjunto Mirador", got.BuildingName)
	})

	t.Run("admin activates subscription", func(t *testing.T) {
		err := s.UpdateSubscription(ctx, "carlos", "PRO", model.SubscriptionActive, "2027-01-01", model.RoleUser)
		require.NoError(t, err)

		got, err := s.GetProfile(ctx, "carlos")
		require.NoError(t, err)
		assert.True(t, got.Active())
		assert.Equal(t, "PRO", got.PlanType)
	})

	t.Run("list", func(t *testing.T) {
		_, err := s.CreateProfile(ctx, "ana", "$2a$10$hash", model.RoleAdmin)
		require.NoError(t, err)

		profiles, err := s.ListProfiles(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "ana", profiles[0].Username)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := s.GetProfile(ctx, "ghost")
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.ErrorIs(t, s.UpdateSubscription(ctx, "ghost", "PRO", "ACTIVO", "", "USER"), sql.ErrNoRows)
	})
}
