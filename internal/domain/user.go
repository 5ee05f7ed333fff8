// internal/domain/user.go
package domain

import "time"

// User represents a registered account.
type User struct {
	ID           int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Username     string    `db:"username" json:"username"`     // Unique username
	Email        string    `db:"email" json:"email"`           // Unique email address
	PasswordHash string    `db:"password_hash" json:"-"`       // bcrypt hash, never the plaintext
	FullName     string    `db:"full_name" json:"full_name"`   // Display name
	Phone        string    `db:"phone" json:"phone"`           // Optional, empty when not given
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewUser creates a new User from a validated registration form and the
// already hashed password.
func NewUser(form RegistrationForm, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: passwordHash,
		FullName:     form.FullName,
		Phone:        form.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
