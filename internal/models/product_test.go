package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ecommerce/internal/models"
)

func TestCheckPrice(t *testing.T) {
	tests := []struct {
		price string
		valid bool
	}{
		{price: "0", valid: true},
		{price: "79.99", valid: true},
		{price: "79.990", valid: true},
		{price: "9999999999.99", valid: true},
		{price: "-0.01", valid: false},
		{price: "1.999", valid: false},
		{price: "0.001", valid: false},
		{price: "10000000000", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := models.CheckPrice(decimal.RequireFromString(tt.price))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
