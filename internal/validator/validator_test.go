package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPayload(t *testing.T) {
	assert.NoError(t, LoginPayload{Email: "a@b.com", Password: "pw"}.Validate())
	assert.Error(t, LoginPayload{Email: "not-an-email", Password: "pw"}.Validate())
	assert.Error(t, LoginPayload{Email: "a@b.com"}.Validate())
}

func TestRegisterPayload(t *testing.T) {
	assert.NoError(t, RegisterPayload{Name: "Nate", Email: "a@b.com", Password: "secret1"}.Validate())
	assert.Error(t, RegisterPayload{Name: "N", Email: "a@b.com", Password: "secret1"}.Validate())
	assert.Error(t, RegisterPayload{Name: "Nate", Email: "a@b.com", Password: "short"}.Validate())
}

func TestAddToCartPayload(t *testing.T) {
	assert.NoError(t, AddToCartPayload{ProductID: "p1", Quantity: 1}.Validate())
	assert.Error(t, AddToCartPayload{ProductID: "", Quantity: 1}.Validate())
	assert.Error(t, AddToCartPayload{ProductID: "p1", Quantity: 0}.Validate())
}

func TestMessageFlattensFailures(t *testing.T) {
	err := LoginPayload{}.Validate()
	require.Error(t, err)
	msg := Message(err)
	assert.Contains(t, msg, "email is required")
	assert.Contains(t, msg, "password is required")
}
