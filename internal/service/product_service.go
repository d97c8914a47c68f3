package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/repository"
	"github.com/yourorg/catalogadmin/internal/storage"
)

type ProductRepository interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	Update(ctx context.Context, req *models.UpdateProductRequest, imageKeys []string) (*models.Product, error)
	ListWithFilters(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error)
}

type ProductService struct {
	repo       ProductRepository
	categories CategoryRepository
	images     storage.Storage
}

func NewProductService(repo ProductRepository, categories CategoryRepository, images storage.Storage) *ProductService {
	return &ProductService{repo: repo, categories: categories, images: images}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, writeError(err, &req.CategoryID)
	}
	return s.withImageURLs(product), nil
}

func (s *ProductService) GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product", params.ProductID)
		}
		return nil, err
	}

	return s.withImageURLs(product), nil
}

// UpdateProduct applies a partial update. When images are attached they are
// stored first and replace the product's previous images, which are then
// removed from storage.
func (s *ProductService) UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	current, err := s.repo.GetByID(ctx, models.GetProductParams{ProductID: req.ID})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product", req.ID)
		}
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	var keys []string
	if len(req.Images) > 0 {
		keys, err = s.storeImages(ctx, req.Images)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, req, keys)
	if err != nil {
		s.deleteImages(ctx, keys)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product", req.ID)
		}
		return nil, writeError(err, req.CategoryID)
	}

	if keys != nil {
		s.deleteImages(ctx, current.Images)
	}

	return s.withImageURLs(updated), nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error) {
	result, err := s.repo.ListWithFilters(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i, p := range result.Products {
		result.Products[i] = s.withImageURLs(p)
	}
	return result, nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID int64) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unknownCategory(categoryID)
		}
		return err
	}
	return nil
}

// writeError turns rejected values into validation errors. A dangling
// category means it was removed between the check and the write.
func writeError(err error, categoryID *int64) error {
	if categoryID != nil && errors.Is(err, repository.ErrInvalidReference) {
		return unknownCategory(*categoryID)
	}
	var oor *repository.OutOfRangeError
	if errors.As(err, &oor) {
		field := oor.Field
		if field == "category_id" {
			field = "category"
		}
		return apperrors.NewValidationError(field, "value is out of range")
	}
	return err
}

func unknownCategory(categoryID int64) error {
	return apperrors.NewValidationError("category", "category "+strconv.FormatInt(categoryID, 10)+" does not exist")
}

func (s *ProductService) storeImages(ctx context.Context, uploads []models.ImageUpload) ([]string, error) {
	keys := make([]string, 0, len(uploads))
	for _, up := range uploads {
		res, err := s.images.Put(ctx, up.Content, storage.PutInput{
			Filename:    up.Filename,
			ContentType: up.ContentType,
			Size:        up.Size,
		})
		if err != nil {
			s.deleteImages(ctx, keys)
			return nil, fmt.Errorf("store image %s: %w", up.Filename, err)
		}
		keys = append(keys, res.Key)
	}
	return keys, nil
}

func (s *ProductService) deleteImages(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.images.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to delete product image", "key", key, "error", err)
		}
	}
}

// withImageURLs swaps stored image keys for their public URLs.
func (s *ProductService) withImageURLs(p *models.Product) *models.Product {
	out := *p
	out.Images = make([]string, len(p.Images))
	for i, key := range p.Images {
		out.Images[i] = s.images.URL(key)
	}
	return &out
}
