// Package store persists inspection records and tenant profiles. Each
// variant owns its own table; line items live in a JSON text column so
// the seven item shapes share one access path.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/crodriguezm/sgsst/model"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db}
}

const envelopeColumns = `consecutive, client_code, date, building_name, establishment_name,
	nit, address, legal_representative, inspector_name, inspector_email,
	signature_url, created_at`

func marshalItems(ins model.Inspection) ([]byte, error) {
	items := ins.Items
	if items == nil {
		items = []model.Item{}
	}
	return json.Marshal(items)
}

func envelopeArgs(ins model.Inspection) []any {
	return []any{
		ins.Consecutive,
		ins.ClientCode,
		ins.Date,
		ins.BuildingName,
		ins.EstablishmentName,
		ins.Nit,
		ins.Address,
		ins.LegalRepresentative,
		ins.InspectorName,
		ins.InspectorEmail,
		ins.SignatureURL,
		ins.CreatedAt,
	}
}

// Insert stores a new record and fills in its id and creation timestamp.
func (s *Store) Insert(ctx context.Context, ins *model.Inspection) error {
	coll, err := ins.Variant.Collection()
	if err != nil {
		return err
	}
	itemsCol, err := ins.Variant.ItemsColumn()
	if err != nil {
		return err
	}
	itemsJSON, err := marshalItems(*ins)
	if err != nil {
		return err
	}

	ins.CreatedAt = time.Now().UTC()

	cols := envelopeColumns + ", " + itemsCol
	args := append(envelopeArgs(*ins), string(itemsJSON))
	if ins.Variant == model.WorkPermits {
		permitJSON, err := json.Marshal(ins.Permit)
		if err != nil {
			return err
		}
		cols += ", permit"
		args = append(args, string(permitJSON))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	return s.db.QueryRowContext(ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", coll, cols, placeholders),
		args...,
	).Scan(&ins.ID)
}

// Update overwrites an existing record in place. The consecutive and the
// creation timestamp are immutable once assigned.
func (s *Store) Update(ctx context.Context, ins model.Inspection) error {
	coll, err := ins.Variant.Collection()
	if err != nil {
		return err
	}
	itemsCol, err := ins.Variant.ItemsColumn()
	if err != nil {
		return err
	}
	itemsJSON, err := marshalItems(ins)
	if err != nil {
		return err
	}

	set := fmt.Sprintf(`client_code=?, date=?, building_name=?, establishment_name=?,
		nit=?, address=?, legal_representative=?, inspector_name=?, inspector_email=?,
		signature_url=?, %s=?`, itemsCol)
	args := []any{
		ins.ClientCode,
		ins.Date,
		ins.BuildingName,
		ins.EstablishmentName,
		ins.Nit,
		ins.Address,
		ins.LegalRepresentative,
		ins.InspectorName,
		ins.InspectorEmail,
		ins.SignatureURL,
		string(itemsJSON),
	}
	if ins.Variant == model.WorkPermits {
		permitJSON, err := json.Marshal(ins.Permit)
		if err != nil {
			return err
		}
		set += ", permit=?"
		args = append(args, string(permitJSON))
	}
	args = append(args, ins.ID)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id=?", coll, set),
		args...,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func selectColumns(v model.Variant) (string, error) {
	itemsCol, err := v.ItemsColumn()
	if err != nil {
		return "", err
	}
	cols := "id, " + envelopeColumns + ", " + itemsCol
	if v == model.WorkPermits {
		cols += ", permit"
	}
	return cols, nil
}

func scanInspection(v model.Variant, scan func(dest ...any) error) (model.Inspection, error) {
	ins := model.Inspection{Variant: v}
	var items, permit []byte

	dest := []any{
		&ins.ID,
		&ins.Consecutive,
		&ins.ClientCode,
		&ins.Date,
		&ins.BuildingName,
		&ins.EstablishmentName,
		&ins.Nit,
		&ins.Address,
		&ins.LegalRepresentative,
		&ins.InspectorName,
		&ins.InspectorEmail,
		&ins.SignatureURL,
		&ins.CreatedAt,
		&items,
	}
	if v == model.WorkPermits {
		dest = append(dest, &permit)
	}
	if err := scan(dest...); err != nil {
		return ins, err
	}

	var err error
	ins.Items, err = model.DecodeItems(v, items)
	if err != nil {
		return ins, err
	}
	if len(permit) > 0 {
		p := model.PermitDetails{}
		if err := json.Unmarshal(permit, &p); err != nil {
			return ins, err
		}
		ins.Permit = &p
	}
	return ins, nil
}

// SelectAll returns every record of a variant, newest first.
func (s *Store) SelectAll(ctx context.Context, v model.Variant) ([]model.Inspection, error) {
	coll, err := v.Collection()
	if err != nil {
		return nil, err
	}
	cols, err := selectColumns(v)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC, id DESC", cols, coll))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Inspection{}
	for rows.Next() {
		ins, err := scanInspection(v, rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, ins)
	}
	return records, rows.Err()
}

// GetByID fetches one record; sql.ErrNoRows when absent.
func (s *Store) GetByID(ctx context.Context, v model.Variant, id int64) (model.Inspection, error) {
	coll, err := v.Collection()
	if err != nil {
		return model.Inspection{}, err
	}
	cols, err := selectColumns(v)
	if err != nil {
		return model.Inspection{}, err
	}

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id=?", cols, coll), id)
	return scanInspection(v, row.Scan)
}
