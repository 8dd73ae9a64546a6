package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemBody struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=100"`
	Note      string `validate:"omitempty,min=2"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(addItemBody{ProductID: "sofa", Quantity: 2}))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(addItemBody{Quantity: 101, Note: "x"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["product_id"])
	assert.Equal(t, "must be less than or equal to 100", fields["quantity"])
	assert.Equal(t, "must be at least 2 characters", fields["Note"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(addItemBody{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'product_id' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"product_id":"clock","quantity":3}`))
		var dst addItemBody
		require.NoError(t, DecodeAndValidate(r, &dst))
		assert.Equal(t, "clock", dst.ProductID)
		assert.Equal(t, 3, dst.Quantity)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
		var dst addItemBody
		err := DecodeAndValidate(r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode request body")
	})

	t.Run("fails validation", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":1}`))
		var dst addItemBody
		var valErr *ValidationError
		assert.ErrorAs(t, DecodeAndValidate(r, &dst), &valErr)
	})
}
