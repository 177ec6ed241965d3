package v1

import (
	"github.com/go-playground/validator/v10"

	"github.com/ndhoang/authgate/internal/core/domain"
)

// validate is safe for concurrent use and caches struct metadata, so a
// single shared instance is fine.
var validate = validator.New()

// ValidateSignup checks the signup fields. Empty-field detection runs first
// and short-circuits per field (name, email, password — first empty wins);
// only then are schema rules applied. Returns nil when the input is valid.
//
// Schema: name alphanumeric and at most 30 characters; email a syntactically
// valid address; password at most 30 characters. Deliberately permissive —
// there is no minimum length or complexity rule.
func ValidateSignup(req domain.SignupRequest) *ValidationError {
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if f.value == "" {
			return &ValidationError{Kind: EmptyField, Field: f.name}
		}
	}

	if err := validate.Var(req.Name, "alphanum,max=30"); err != nil {
		return &ValidationError{Kind: SchemaViolation, Field: "name"}
	}
	if err := validate.Var(req.Email, "email"); err != nil {
		return &ValidationError{Kind: SchemaViolation, Field: "email"}
	}
	if err := validate.Var(req.Password, "max=30"); err != nil {
		return &ValidationError{Kind: SchemaViolation, Field: "password"}
	}

	return nil
}

// ValidateLogin checks the login fields: both must be present, and the
// email must be syntactically valid. The password gets no schema rule here;
// it is only ever compared against the stored hash.
func ValidateLogin(req domain.LoginRequest) *ValidationError {
	for _, f := range []struct{ name, value string }{
		{"email", req.Email},
		{"password", req.Password},
	} {
		if f.value == "" {
			return &ValidationError{Kind: EmptyField, Field: f.name}
		}
	}

	if err := validate.Var(req.Email, "email"); err != nil {
		return &ValidationError{Kind: SchemaViolation, Field: "email"}
	}

	return nil
}
