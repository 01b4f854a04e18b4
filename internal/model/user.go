package model

// User mirrors a row of the USERS table. The password column holds a bcrypt
// hash and is never serialised.
type User struct {
	ID           uint64 `json:"user_id"`
	Name         string `json:"user_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsVIP        bool   `json:"is_vip"`
}
