package domain_test

import (
	"testing"

	"git-issue.sh/core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusAliases(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Status
	}{
		{"todo", domain.StatusTodo},
		{"Open", domain.StatusTodo},
		{"in-progress", domain.StatusInProgress},
		{"inprogress", domain.StatusInProgress},
		{"PROGRESS", domain.StatusInProgress},
		{"done", domain.StatusDone},
		{"closed", domain.StatusDone},
		{"complete", domain.StatusDone},
	}
	for _, c := range cases {
		got, err := domain.ParseStatus(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := domain.ParseStatus("bogus")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusDefault(t *testing.T) {
	var s domain.Status
	assert.Equal(t, domain.StatusTodo, s)
}
