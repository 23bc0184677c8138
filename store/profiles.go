package store

import (
	"context"
	"database/sql"

	"github.com/crodriguezm/sgsst/model"
)

const profileColumns = `id, username, client_code, building_name, nit, address,
	legal_representative, inspector_name, email, alternative_email, phone,
	mobile, city, department, country, plan_type, subscription_status,
	expiry_date, role`

func scanProfile(scan func(dest ...any) error) (model.Profile, error) {
	p := model.Profile{}
	err := scan(
		&p.ID,
		&p.Username,
		&p.ClientCode,
		&p.BuildingName,
		&p.Nit,
		&p.Address,
		&p.LegalRepresentative,
		&p.InspectorName,
		&p.Email,
		&p.AlternativeEmail,
		&p.Phone,
		&p.Mobile,
		&p.City,
		&p.Department,
		&p.Country,
		&p.PlanType,
		&p.SubscriptionStatus,
		&p.ExpiryDate,
		&p.Role,
	)
	return p, err
}

// GetProfile fetches the tenant account by username.
func (s *Store) GetProfile(ctx context.Context, username string) (model.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE username=?", username)
	return scanProfile(row.Scan)
}

// ListProfiles returns every account, for the admin panel.
func (s *Store) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// CreateProfile registers a new account with a pre-hashed password.
func (s *Store) CreateProfile(ctx context.Context, username, passwordHash, role string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (username, password_hash, role) VALUES (?, ?, ?)
		RETURNING id`,
		username, passwordHash, role,
	).Scan(&id)
	return id, err
}

// UpdateProfile saves the fields a tenant may edit about themselves.
// Subscription and role fields are admin territory, see UpdateSubscription.
func (s *Store) UpdateProfile(ctx context.Context, p model.Profile) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET
			client_code=?, building_name=?, nit=?, address=?, legal_representative=?,
			inspector_name=?, email=?, alternative_email=?, phone=?, mobile=?,
			city=?, department=?, country=?
		WHERE username=?`,
		p.ClientCode,
		p.BuildingName,
		p.Nit,
		p.Address,
		p.LegalRepresentative,
		p.InspectorName,
		p.Email,
		p.AlternativeEmail,
		p.Phone,
		p.Mobile,
		p.City,
		p.Department,
		p.Country,
		p.Username,
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

// UpdateSubscription is the admin-side update of plan and access fields.
func (s *Store) UpdateSubscription(ctx context.Context, username, planType, status, expiryDate, role string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET plan_type=?, subscription_status=?, expiry_date=?, role=?
		WHERE username=?`,
		planType, status, expiryDate, role, username,
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
