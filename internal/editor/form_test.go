package editor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/catalogadmin/internal/client"
	"github.com/yourorg/catalogadmin/internal/models"
)

var testCategories = []models.Category{{ID: 1, Name: "Apparel"}, {ID: 2, Name: "Home"}}

func TestValidateFormAcceptsValidValues(t *testing.T) {
	assert.Nil(t, validateForm(validValues(), testCategories, []string{"USD"}))
}

func TestValidateFormFeaturedIsOptional(t *testing.T) {
	v := validValues()
	v.Featured = true
	assert.Nil(t, validateForm(v, testCategories, []string{"USD"}))
}

func TestValidateFormReportsEveryMissingField(t *testing.T) {
	got := validateForm(FormValues{}, testCategories, []string{"USD"})

	assert.Equal(t, FieldErrors{
		"name":        "Name is required",
		"description": "Description is required",
		"price":       "Price is required",
		"stock":       "Stock is required",
		"category":    "Category is required",
		"currency":    "Currency is required",
	}, got)
}

func TestValidateFormEnforcesColumnLimits(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*FormValues)
		field string
		want  string
	}{
		{"negative price", func(v *FormValues) { v.Price = "-1" }, "price", "Price must not be negative"},
		{"three decimals", func(v *FormValues) { v.Price = "1.999" }, "price", "Price must have at most 2 decimal places"},
		{"price too wide", func(v *FormValues) { v.Price = "12345678901" }, "price", "Price is too large"},
		{"stock above int32", func(v *FormValues) { v.Stock = "99999999999" }, "stock", "Stock is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			tt.edit(&v)

			assert.Equal(t, FieldErrors{tt.field: tt.want}, validateForm(v, testCategories, []string{"USD"}))
		})
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{"stock": "Stock is required", "name": "Name is required"}}
	assert.Equal(t, "invalid form: name: Name is required; stock: Stock is required", err.Error())
}

func TestFormFromProduct(t *testing.T) {
	f := formFromProduct(&models.Product{
		Name:        "Mug",
		Description: "Ceramic",
		Price:       decimal.RequireFromString("3.10"),
		Stock:       0,
		CategoryID:  12,
		Currency:    "USD",
	})

	assert.Equal(t, "3.1", f.Price)
	assert.Equal(t, "0", f.Stock)
	assert.Equal(t, "12", f.Category)
	assert.False(t, f.Featured)
	assert.Empty(t, f.Images)
}

func TestBuildPayloadOrder(t *testing.T) {
	v := validValues()
	p := buildPayload(v)

	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"name", "description", "category", "price", "stock", "currency", "featured"}, names)

	require.Len(t, p.Files, 2)
	v.Images[0] = client.File{Filename: "changed.png"}
	assert.Equal(t, "a.png", p.Files[0].Filename)
}

func TestFormCloneIsIndependent(t *testing.T) {
	v := validValues()
	c := v.clone()
	c.Images[0].Filename = "other.png"
	c.Name = "other"

	assert.Equal(t, "a.png", v.Images[0].Filename)
	assert.Equal(t, "Big mug", v.Name)
}
