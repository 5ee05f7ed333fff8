// internal/domain/registration.go
package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form field names, shared by validation, templates and the HTTP layer.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
)

// Minimum lengths enforced on registration.
const (
	MinUsernameLength = 4
	MinPasswordLength = 6
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// RegistrationForm is a sign-up submission. Tag order inside `validate`
// is the rule priority: the first failing rule is the one reported.
type RegistrationForm struct {
	Username string `form:"username" validate:"required,username_chars,min=4"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	FullName string `form:"full_name" validate:"required"`
	Phone    string `form:"phone"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register username_chars validation: %v", err))
	}
	return v
}

var messages = map[string]string{
	FieldUsername + ".required":       "Username is required",
	FieldUsername + ".username_chars": "Username can only contain letters, numbers, and underscores",
	FieldUsername + ".min":            fmt.Sprintf("Username must be at least %d characters", MinUsernameLength),
	FieldEmail + ".required":          "Email is required",
	FieldEmail + ".email":             "Email is invalid",
	FieldPassword + ".required":       "Password is required",
	FieldPassword + ".min":            fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
	FieldFullName + ".required":       "Full name is required",
}

// Normalize trims surrounding whitespace from every field.
func (f RegistrationForm) Normalize() RegistrationForm {
	return RegistrationForm{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: strings.TrimSpace(f.Password),
		FullName: strings.TrimSpace(f.FullName),
		Phone:    strings.TrimSpace(f.Phone),
	}
}

// Echo returns the values safe to send back to the browser.
func (f RegistrationForm) Echo() RegistrationForm {
	f.Password = ""
	return f
}

// Validate checks every field and returns one message per failing field,
// or nil when the form is acceptable. It has no side effects.
func (f RegistrationForm) Validate() FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable on a programming error, e.g. a malformed tag.
		panic(fmt.Sprintf("validate registration form: %v", err))
	}

	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Messages for values that are already registered.
const (
	MsgUsernameTaken = "Username already exists"
	MsgEmailTaken    = "Email already exists"
)
