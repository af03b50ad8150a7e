package waitlist

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/clixs/waitlist-api/config"
	apperrors "github.com/clixs/waitlist-api/pkg/errors"
)

// EmailValidator returns the accepted address or a validation error.
type EmailValidator interface {
	Validate(raw any) (string, error)
}

func NewEmailValidator(mode string) (EmailValidator, error) {
	switch mode {
	case "", config.EmailValidationLenient:
		return lenientEmailValidator{}, nil
	case config.EmailValidationStrict:
		return strictEmailValidator{validate: validator.New(validator.WithRequiredStructEnabled())}, nil
	default:
		return nil, fmt.Errorf("waitlist: unknown email validation mode %q", mode)
	}
}

// lenientEmailValidator accepts any non-empty string containing "@", so "@"
// on its own passes.
type lenientEmailValidator struct{}

func (lenientEmailValidator) Validate(raw any) (string, error) {
	email, ok := raw.(string)
	if !ok || email == "" || !strings.Contains(email, "@") {
		return "", apperrors.NewValidationError(InvalidEmailMessage, nil)
	}
	return email, nil
}

type strictEmail struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type strictEmailValidator struct {
	validate *validator.Validate
}

func (v strictEmailValidator) Validate(raw any) (string, error) {
	email, err := lenientEmailValidator{}.Validate(raw)
	if err != nil {
		return "", err
	}

	if err := v.validate.Struct(&strictEmail{Email: email}); err != nil {
		return "", apperrors.NewValidationError(InvalidEmailMessage, err)
	}
	return email, nil
}

// rejectionReason describes why validation failed, for server-side logs only.
func rejectionReason(err error) string {
	details := apperrors.FormatValidationErrors(err, &strictEmail{})
	if len(details) == 0 {
		return "missing email or no @"
	}

	reasons := make([]string, len(details))
	for i, d := range details {
		reasons[i] = d.Field + ": " + d.Message
	}
	return strings.Join(reasons, "; ")
}
