package user

import "time"

// User is the internal identity record. ExternalKey encodes origin:
// "local_<email>" for password accounts, "<provider>_<providerId>" for
// federated accounts. Exactly one user exists per external key.
type User struct {
	ID           string
	Email        string
	Nickname     string
	PasswordHash string
	ExternalKey  string
	CreatedAt    time.Time
}

// Profile is the public projection returned to clients.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Nickname: u.Nickname}
}
