package model

// Organization mirrors a row of the ORGANIZATIONS table. Organizations own
// events and may log in like users.
type Organization struct {
	ID           uint64  `json:"org_id"`
	Name         string  `json:"org_name"`
	Address      *string `json:"address"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	IsPremium    bool    `json:"is_premium"`
}
