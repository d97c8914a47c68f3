package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nhalm/canonlog"
	"github.com/yourorg/catalogadmin/internal/models"
)

// ProductService defines only the methods the API layer needs from the product service.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type Handler struct {
	productSvc  ProductService
	categorySvc CategoryService
}

func NewHandler(productSvc ProductService, categorySvc CategoryService) *Handler {
	return &Handler{
		productSvc:  productSvc,
		categorySvc: categorySvc,
	}
}

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product"
// @Success 201 {object} ProductEnvelope
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, err, "invalid request body", "")
		return
	}

	if err := ValidateStruct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_name": req.Name,
	})

	serviceReq := models.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       *req.Stock,
		CategoryID:  req.CategoryID,
		Currency:    req.Currency,
		Featured:    req.Featured,
	}

	product, err := h.productSvc.CreateProduct(r.Context(), &serviceReq)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Created(w, ProductEnvelope{Product: convertToProductResponse(product)})
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param limit query int false "Page size (1-100)"
// @Param featured query bool false "Only featured or non-featured products"
// @Param starting_after query string false "Cursor for the next page"
// @Param ending_before query string false "Cursor for the previous page"
// @Success 200 {object} ProductListResponse
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var featured *bool
	if f := r.URL.Query().Get("featured"); f != "" {
		b := f == "true"
		featured = &b
	}

	filter := models.ListProductsFilter{
		Featured:      featured,
		Limit:         limit,
		StartingAfter: ptrOrNil(r.URL.Query().Get("starting_after")),
		EndingBefore:  ptrOrNil(r.URL.Query().Get("ending_before")),
	}

	result, err := h.productSvc.ListProducts(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]ProductResponse, len(result.Products))
	for i, p := range result.Products {
		responses[i] = convertToProductResponse(p)
	}

	var nextCursor, prevCursor string
	if result.NextCursor != nil {
		nextCursor = *result.NextCursor
	}
	if result.PrevCursor != nil {
		prevCursor = *result.PrevCursor
	}

	ProductPage(w, responses, result.HasMore, nextCursor, prevCursor)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductEnvelope
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productSvc.GetProduct(r.Context(), models.GetProductParams{
		ProductID: id,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, ProductEnvelope{Product: convertToProductResponse(product)})
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Multipart partial update. Omitted fields are unchanged; image parts replace the image set.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string false "Name"
// @Param description formData string false "Description"
// @Param category formData string false "Category ID"
// @Param price formData string false "Price"
// @Param stock formData string false "Stock"
// @Param currency formData string false "ISO 4217 currency"
// @Param featured formData bool false "Featured"
// @Param image formData file false "Product image (repeatable)"
// @Success 200 {object} ProductEnvelope
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [patch]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	serviceReq, closer, err := parseUpdateForm(r, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	defer closer.Close()

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_id":  id,
		"image_count": len(serviceReq.Images),
	})

	product, err := h.productSvc.UpdateProduct(r.Context(), serviceReq)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, ProductEnvelope{Product: convertToProductResponse(product)})
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} CategoriesEnvelope
// @Router /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}

	Success(w, CategoriesEnvelope{Categories: out})
}

func convertToProductResponse(product *models.Product) ProductResponse {
	images := product.Images
	if images == nil {
		images = []string{}
	}

	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Stock:       product.Stock,
		CategoryID:  product.CategoryID,
		Currency:    product.Currency,
		Featured:    product.Featured,
		Images:      images,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
