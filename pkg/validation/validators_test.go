package validation_test

import (
	"testing"

	"hubspot-webhook-relay/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"required"`
}

func TestMissingFieldsUsesJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Struct(form{})
	require.Error(t, err)
	assert.Equal(t, []string{"name", "email"}, validation.MissingFields(err))

	assert.NoError(t, v.Struct(form{Name: "Ada", Email: "ada@example.com"}))
}

func TestMissingFieldsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, validation.MissingFields(assert.AnError))
}
