package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"fullName" binding:"required,min=2"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestPwdAliasMinSix(t *testing.T) {
	v := engine(t)

	err := v.Struct(registerPayload{Email: "a@b.co", Password: "12345", FullName: "Ana"})
	require.Error(t, err)
	details := ToDetails(err)
	assert.Equal(t, "min length 6", details["password"])

	err = v.Struct(registerPayload{Email: "a@b.co", Password: "123456", FullName: "Ana"})
	assert.NoError(t, err)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	v := engine(t)

	err := v.Struct(registerPayload{Password: "123456", FullName: "A"})
	require.Error(t, err)
	details := ToDetails(err)

	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "must be at least 2 characters long", details["fullName"])
	_, hasGoName := details["FullName"]
	assert.False(t, hasGoName)
}

func TestToDetailsNilAndUnknown(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(assert.AnError))
}

func TestHexcolorAlias(t *testing.T) {
	v := engine(t)

	type appearance struct {
		PrimaryColor string `json:"primaryColor" binding:"required,hexcolor7"`
	}
	assert.NoError(t, v.Struct(appearance{PrimaryColor: "#3b82f6"}))
	assert.Error(t, v.Struct(appearance{PrimaryColor: "#fff"}))
	assert.Error(t, v.Struct(appearance{PrimaryColor: "3b82f6f"}))
}
