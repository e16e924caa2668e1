package product

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Sammk21/ecommerce-admin/internal/catalog"
)

const (
	minNameLength = 3
	maxNameLength = 255
)

// FieldError is one failed constraint on a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the field errors for a rejected submission. It is
// returned before any catalog mutation is attempted.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// validateRecord schema-checks the candidate product and assembles the
// submission payload. An empty image list is valid. SKU is server-generated
// and never part of the payload.
func validateRecord(name, priceText string, images []string) (catalog.Record, *ValidationError) {
	var fields []FieldError

	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minNameLength {
		fields = append(fields, FieldError{Field: "name", Message: "product name must be at least 3 characters"})
	} else if n > maxNameLength {
		fields = append(fields, FieldError{Field: "name", Message: "product name must not exceed 255 characters"})
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceText))
	if err != nil {
		fields = append(fields, FieldError{Field: "price", Message: "price must be a number"})
	} else if !price.IsPositive() {
		fields = append(fields, FieldError{Field: "price", Message: "price must be greater than 0"})
	}

	if len(fields) > 0 {
		return catalog.Record{}, &ValidationError{Fields: fields}
	}

	if images == nil {
		images = []string{}
	}
	return catalog.Record{Name: name, Price: price, Images: images}, nil
}
