package domain

// User is immutable after registration. PasswordHash holds a salted
// bcrypt hash and must never leave the process in a response body.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"admin"`
}
