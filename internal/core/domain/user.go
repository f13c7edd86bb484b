package domain

import "time"

// UserRecord is the profile document pinned to the content-addressed store at
// signup. Once pinned it is immutable; the CID returned by the store is the
// only handle for retrieving it.
type UserRecord struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

// Profile is the client-facing view of a UserRecord with the credential
// material stripped.
type Profile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// Profile returns the record with the password hash removed.
func (u *UserRecord) Profile() Profile {
	return Profile{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// Session is the authenticated-user state established at login. It is never
// persisted server-side; it travels as a signed token and is torn down by the
// client at logout.
type Session struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	CID      string `json:"cid"`
}

// Anonymous reports whether the session carries no authenticated identity.
func (s Session) Anonymous() bool {
	return s.CID == ""
}
