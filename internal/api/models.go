package api

// CreateProductRequest represents the request body for creating a product.
// @Description Request payload for creating a product
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=5000"`
	Price       string `json:"price" validate:"required,numeric"`
	Stock       *int   `json:"stock" validate:"required,gte=0,lte=2147483647"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,iso4217"`
	Featured    bool   `json:"featured"`
}

// UpdateProductForm mirrors the multipart fields accepted by PATCH
// /products/{id}. Absent fields are nil and left unchanged.
type UpdateProductForm struct {
	Name        *string `form:"name" validate:"omitnil,min=1,max=255"`
	Description *string `form:"description" validate:"omitnil,min=1,max=5000"`
	Price       *string `form:"price" validate:"omitnil,numeric"`
	Stock       *string `form:"stock" validate:"omitnil,number"`
	Category    *string `form:"category" validate:"omitnil,number"`
	Currency    *string `form:"currency" validate:"omitnil,iso4217"`
	Featured    *string `form:"featured" validate:"omitnil,boolean"`
}

// ProductResponse represents a product resource in API responses.
// @Description Product resource
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	CategoryID  int64    `json:"category_id"`
	Currency    string   `json:"currency"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ProductEnvelope wraps a single product.
// @Description Single product response
type ProductEnvelope struct {
	Product ProductResponse `json:"product"`
}

// CategoryResponse represents a category resource in API responses.
// @Description Category resource
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoriesEnvelope wraps the category list.
// @Description Category list response
type CategoriesEnvelope struct {
	Categories []CategoryResponse `json:"categories"`
}
