package editor

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/yourorg/catalogadmin/internal/client"
	"github.com/yourorg/catalogadmin/internal/models"
)

// FormValues is the editable mirror of a product. Price and stock are kept as
// entered so validation can report them.
type FormValues struct {
	Name        string        `form:"name" validate:"required"`
	Description string        `form:"description" validate:"required"`
	Price       string        `form:"price" validate:"required,numeric"`
	Stock       string        `form:"stock" validate:"required,number"`
	Category    string        `form:"category" validate:"required"`
	Currency    string        `form:"currency" validate:"required"`
	Featured    bool          `form:"featured"`
	Images      []client.File `form:"image"`
}

func formFromProduct(p *models.Product) *FormValues {
	return &FormValues{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Stock:       strconv.Itoa(p.Stock),
		Category:    strconv.FormatInt(p.CategoryID, 10),
		Currency:    p.Currency,
		Featured:    p.Featured,
	}
}

func (f FormValues) clone() *FormValues {
	f.Images = slices.Clone(f.Images)
	return &f
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// ValidationError is returned by Submit when the form fails its schema.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		return name
	})
}

// validateForm checks the schema, then that category and currency are among
// the offered options and that every image has an accepted type.
func validateForm(v FormValues, categories []models.Category, currencies []string) FieldErrors {
	out := FieldErrors{}

	if err := validate.Struct(v); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				out[fe.Field()] = messageFor(fe.Field(), fe.Tag())
			}
		} else {
			out["_"] = "Form values are invalid"
		}
	}

	if _, failed := out["price"]; !failed {
		if msg := priceMessage(v.Price); msg != "" {
			out["price"] = msg
		}
	}
	if _, failed := out["stock"]; !failed {
		if _, err := strconv.ParseInt(v.Stock, 10, 32); err != nil {
			out["stock"] = "Stock is too large"
		}
	}
	if _, failed := out["category"]; !failed && !hasCategory(categories, v.Category) {
		out["category"] = "Category must be one of the listed categories"
	}
	if _, failed := out["currency"]; !failed && !slices.Contains(currencies, v.Currency) {
		out["currency"] = "Currency must be one of: " + strings.Join(currencies, ", ")
	}
	for _, img := range v.Images {
		if !models.IsAllowedImageType(img.ContentType) {
			out["image"] = "Unsupported file format"
			break
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func messageFor(field, tag string) string {
	label := strings.ToUpper(field[:1]) + field[1:]

	switch tag {
	case "required":
		return label + " is required"
	case "numeric":
		return label + " must be a number"
	case "number":
		return label + " must be a whole number"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// priceMessage applies the same limits as the price column.
func priceMessage(value string) string {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return "Price must be a number"
	}
	switch models.CheckPrice(price) {
	case nil:
		return ""
	case models.ErrPriceNegative:
		return "Price must not be negative"
	case models.ErrPriceScale:
		return "Price must have at most 2 decimal places"
	default:
		return "Price is too large"
	}
}

func hasCategory(categories []models.Category, value string) bool {
	for _, c := range categories {
		if strconv.FormatInt(c.ID, 10) == value {
			return true
		}
	}
	return false
}

// buildPayload lays out the form as the multipart fields the API expects.
func buildPayload(v FormValues) *client.UpdatePayload {
	return &client.UpdatePayload{
		Fields: []client.Field{
			{Name: "name", Value: v.Name},
			{Name: "description", Value: v.Description},
			{Name: "category", Value: v.Category},
			{Name: "price", Value: v.Price},
			{Name: "stock", Value: v.Stock},
			{Name: "currency", Value: v.Currency},
			{Name: "featured", Value: strconv.FormatBool(v.Featured)},
		},
		Files: slices.Clone(v.Images),
	}
}
