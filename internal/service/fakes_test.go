package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/repository"
	"github.com/yourorg/catalogadmin/internal/storage"
)

type fakeProductRepo struct {
	products  map[string]*models.Product
	updateErr error

	lastUpdate *models.UpdateProductRequest
	lastKeys   []string
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*models.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	p := &models.Product{
		ID:          fmt.Sprintf("prod_%d", len(r.products)+1),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Currency:    req.Currency,
		Featured:    req.Featured,
		Images:      []string{},
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, params models.GetProductParams) (*models.Product, error) {
	p, ok := r.products[params.ProductID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, req *models.UpdateProductRequest, imageKeys []string) (*models.Product, error) {
	r.lastUpdate = req
	r.lastKeys = imageKeys
	if r.updateErr != nil {
		return nil, r.updateErr
	}

	p, ok := r.products[req.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		p.CategoryID = *req.CategoryID
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if imageKeys != nil {
		p.Images = imageKeys
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListWithFilters(_ context.Context, _ models.ListProductsFilter) (*models.ListProductsResult, error) {
	out := &models.ListProductsResult{}
	for _, p := range r.products {
		cp := *p
		out.Products = append(out.Products, &cp)
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories []models.Category
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, categoryID int64) (*models.Category, error) {
	for _, c := range r.categories {
		if c.ID == categoryID {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
	failPut int
	puts    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (s *fakeStorage) Put(_ context.Context, r io.Reader, in storage.PutInput) (storage.PutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.failPut > 0 && s.puts == s.failPut {
		return storage.PutResult{}, errors.New("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.PutResult{}, err
	}
	key := fmt.Sprintf("img_%d_%s", s.puts, in.Filename)
	s.objects[key] = string(data)
	return storage.PutResult{Key: key, URL: s.URL(key)}, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) URL(key string) string {
	return "/uploads/" + key
}
