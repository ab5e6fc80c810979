package router

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"crm/internal/service"
)

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&service.CreateCustomerCommand{
		FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Region: "Europe",
	}))

	err := v.Validate(&service.UpdateCustomerCommand{FirstName: "Jane"})
	if assert.Error(t, err) {
		assert.Equal(t,
			"id is required; lastName is required; email is required; region is required",
			err.Error())
	}

	err = v.Validate(&service.UpdateCustomerCommand{
		ID: uuid.New(), FirstName: "Jane", LastName: "Smith", Email: "jane", Region: "Europe",
	})
	if assert.Error(t, err) {
		assert.Equal(t, "email must be a valid email", err.Error())
	}
}
