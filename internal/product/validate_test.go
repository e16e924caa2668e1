package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"decimal accepted", "19.99", true},
		{"integer accepted", "5", true},
		{"zero rejected", "0", false},
		{"negative rejected", "-3", false},
		{"non-numeric rejected", "abc", false},
		{"empty rejected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verr := validateRecord("valid name", tt.price, nil)
			if tt.valid {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, "price", verr.Fields[0].Field)
			}
		})
	}
}

func TestValidateRecordName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"two characters rejected", "ab", false},
		{"exactly three characters accepted", "abc", true},
		{"256 characters rejected", strings.Repeat("x", 256), false},
		{"255 characters accepted", strings.Repeat("x", 255), true},
		{"whitespace-only rejected", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verr := validateRecord(tt.input, "1.00", nil)
			if tt.valid {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.Equal(t, "name", verr.Fields[0].Field)
			}
		})
	}
}

func TestValidateRecordCollectsAllFields(t *testing.T) {
	_, verr := validateRecord("x", "abc", nil)
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "name")
	assert.Contains(t, verr.Error(), "price")
}

func TestValidateRecordAssemblesPayload(t *testing.T) {
	rec, verr := validateRecord("  Coffee Table  ", " 249.90 ", []string{"http://cdn.test/v1/products/a.jpg"})
	require.Nil(t, verr)
	assert.Equal(t, "Coffee Table", rec.Name)
	assert.Equal(t, "249.9", rec.Price.String())
	assert.Len(t, rec.Images, 1)
}
