package waitlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clixs/waitlist-api/config"
	apperrors "github.com/clixs/waitlist-api/pkg/errors"
)

func TestLenientEmailValidator(t *testing.T) {
	v, err := NewEmailValidator(config.EmailValidationLenient)
	require.NoError(t, err)

	accepted := []string{"ada@example.com", "@", "not-really@", "@nothing", " spaced @ out "}
	for _, email := range accepted {
		got, err := v.Validate(email)
		assert.NoError(t, err, "%q should pass the @ rule", email)
		assert.Equal(t, email, got)
	}

	rejected := []any{nil, "", "ada.example.com", 42, true, []string{"a@b"}, map[string]any{"email": "a@b"}}
	for _, raw := range rejected {
		_, err := v.Validate(raw)
		require.Error(t, err, "%v should be rejected", raw)
		assert.True(t, apperrors.IsValidationError(err))
		assert.Equal(t, InvalidEmailMessage, apperrors.GetHumanReadableMessage(err))
	}
}

func TestStrictEmailValidator(t *testing.T) {
	v, err := NewEmailValidator(config.EmailValidationStrict)
	require.NoError(t, err)

	got, err := v.Validate("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got)

	for _, raw := range []any{"@", "ada@", "@example.com", "a b@example.com", nil, strings.Repeat("a", 250) + "@example.com"} {
		_, err := v.Validate(raw)
		require.Error(t, err, "%v should be rejected in strict mode", raw)
		assert.True(t, apperrors.IsValidationError(err))
	}
}

func TestNewEmailValidator_UnknownMode(t *testing.T) {
	_, err := NewEmailValidator("paranoid")
	assert.Error(t, err)

	v, err := NewEmailValidator("")
	require.NoError(t, err)
	assert.IsType(t, lenientEmailValidator{}, v)
}

func TestRejectionReason(t *testing.T) {
	strict, _ := NewEmailValidator(config.EmailValidationStrict)
	_, err := strict.Validate("ada@")
	assert.Equal(t, "email: Invalid email format", rejectionReason(err))

	lenient, _ := NewEmailValidator(config.EmailValidationLenient)
	_, err = lenient.Validate("ada")
	assert.Equal(t, "missing email or no @", rejectionReason(err))
}
