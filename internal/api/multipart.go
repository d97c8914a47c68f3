package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
)

const (
	imageField         = "image"
	multipartMaxMemory = 8 << 20
)

// parseUpdateForm reads a multipart PATCH body into an update request. The
// returned closer releases the opened image parts and the form's temp files.
func parseUpdateForm(r *http.Request, productID string) (*models.UpdateProductRequest, io.Closer, error) {
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, apperrors.NewValidationError("", "request body must be multipart/form-data")
		}
		return nil, nil, apperrors.NewValidationError("", "invalid multipart body")
	}

	closer := &formCloser{form: r.MultipartForm}

	form := UpdateProductForm{
		Name:        formValue(r.MultipartForm, "name"),
		Description: formValue(r.MultipartForm, "description"),
		Price:       formValue(r.MultipartForm, "price"),
		Stock:       formValue(r.MultipartForm, "stock"),
		Category:    formValue(r.MultipartForm, "category"),
		Currency:    formValue(r.MultipartForm, "currency"),
		Featured:    formValue(r.MultipartForm, "featured"),
	}
	if err := ValidateStruct(form); err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	req, err := form.toUpdateRequest(productID)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	for _, fh := range r.MultipartForm.File[imageField] {
		contentType := fh.Header.Get("Content-Type")
		if !models.IsAllowedImageType(contentType) {
			_ = closer.Close()
			return nil, nil, apperrors.NewValidationError(imageField, fmt.Sprintf("unsupported file format: %s", contentType))
		}

		f, err := fh.Open()
		if err != nil {
			_ = closer.Close()
			return nil, nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		closer.files = append(closer.files, f)

		req.Images = append(req.Images, models.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Content:     f,
		})
	}

	return req, closer, nil
}

func (f UpdateProductForm) toUpdateRequest(productID string) (*models.UpdateProductRequest, error) {
	req := &models.UpdateProductRequest{
		ID:          productID,
		Name:        f.Name,
		Description: f.Description,
		Currency:    f.Currency,
	}

	if f.Price != nil {
		price, err := parsePrice(*f.Price)
		if err != nil {
			return nil, err
		}
		req.Price = &price
	}

	if f.Stock != nil {
		stock, err := strconv.ParseInt(*f.Stock, 10, 32)
		if err != nil {
			return nil, apperrors.NewValidationError("stock", "stock is out of range")
		}
		n := int(stock)
		req.Stock = &n
	}

	if f.Category != nil {
		category, err := strconv.ParseInt(*f.Category, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError("category", "category is out of range")
		}
		req.CategoryID = &category
	}

	if f.Featured != nil {
		featured, err := strconv.ParseBool(*f.Featured)
		if err != nil {
			return nil, apperrors.NewValidationError("featured", "featured must be true or false")
		}
		req.Featured = &featured
	}

	return req, nil
}

// parsePrice accepts decimals that fit the price column exactly.
func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError("price", "price must be a number")
	}
	if err := models.CheckPrice(price); err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError("price", err.Error())
	}
	return price, nil
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

type formCloser struct {
	form  *multipart.Form
	files []multipart.File
}

func (c *formCloser) Close() error {
	for _, f := range c.files {
		_ = f.Close()
	}
	return c.form.RemoveAll()
}
