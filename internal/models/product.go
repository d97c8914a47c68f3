package models

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  int64
	Currency    string
	Featured    bool
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GetProductParams struct {
	ProductID string
}

type CreateProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  int64
	Currency    string
	Featured    bool
}

// UpdateProductRequest carries a partial update. Nil fields are left unchanged.
// A non-empty Images slice replaces the stored image set.
type UpdateProductRequest struct {
	ID          string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *int64
	Currency    *string
	Featured    *bool
	Images      []ImageUpload
}

// ImageUpload is an image file received with an update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ListProductsFilter struct {
	Featured      *bool
	Limit         int
	StartingAfter *string
	EndingBefore  *string
}

type ListProductsResult struct {
	Products   []*Product
	HasMore    bool
	NextCursor *string
	PrevCursor *string
}
