package model

// Profile is the tenant account record. It seeds the envelope of every
// new inspection and carries the subscription state checked before
// safety submissions.
type Profile struct {
	ID                  int64  `json:"id"`
	Username            string `json:"username"`
	ClientCode          string `json:"client_code"`
	BuildingName        string `json:"building_name"`
	Nit                 string `json:"nit"`
	Address             string `json:"address"`
	LegalRepresentative string `json:"legal_representative"`
	InspectorName       string `json:"inspector_name"`
	Email               string `json:"email"`
	AlternativeEmail    string `json:"alternative_email"`
	Phone               string `json:"phone"`
	Mobile              string `json:"mobile"`
	City                string `json:"city"`
	Department          string `json:"department"`
	Country             string `json:"country"`
	PlanType            string `json:"plan_type"`
	SubscriptionStatus  string `json:"subscription_status"`
	ExpiryDate          string `json:"expiry_date"`
	Role                string `json:"role"`
}

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	SubscriptionActive = "ACTIVO"
)

// Active reports whether the profile may file safety condition reports.
func (p Profile) Active() bool {
	return p.SubscriptionStatus == SubscriptionActive
}
