package domain_test

import (
	"testing"

	"git-issue.sh/core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, domain.ValidateTitle("ok"))
	assert.ErrorIs(t, domain.ValidateTitle(""), domain.ErrValidation)
	assert.ErrorIs(t, domain.ValidateTitle("   "), domain.ErrValidation)
}

func TestValidateIdentity(t *testing.T) {
	assert.NoError(t, domain.ValidateIdentity(domain.NewIdentity("A", "a@x")))
	assert.ErrorIs(t, domain.ValidateIdentity(domain.NewIdentity("A", "not-an-email")), domain.ErrValidation)
}
