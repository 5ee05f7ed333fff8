// internal/api/types/page.go
package types

import "user-registration/internal/domain"

// RegisterPage is everything the registration template can see.
// Values never carries the password.
type RegisterPage struct {
	Values       domain.RegistrationForm
	Errors       domain.FieldErrors
	GeneralError string
}

// FieldError returns the message for field, or "" when it is valid.
func (p RegisterPage) FieldError(field string) string {
	return p.Errors[field]
}
