package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yourorg/catalogadmin/internal/client"
	"github.com/yourorg/catalogadmin/internal/models"
)

type updateCall struct {
	productID  string
	payload    *client.UpdatePayload
	credential string
}

type fakeAPI struct {
	mu sync.Mutex

	products       map[string]*models.Product
	productErrs    map[string]error
	categories     []models.Category
	categoriesErr  error
	productGates   map[string]chan struct{}
	categoriesGate chan struct{}
	updateErr      error

	productCalls []string
	updates      []updateCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		products: map[string]*models.Product{
			"prod_1": sampleProduct("prod_1", "Mug"),
			"prod_2": sampleProduct("prod_2", "Lamp"),
		},
		productErrs:  map[string]error{},
		productGates: map[string]chan struct{}{},
		categories: []models.Category{
			{ID: 1, Name: "Apparel"},
			{ID: 2, Name: "Home"},
		},
	}
}

func (a *fakeAPI) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	a.mu.Lock()
	a.productCalls = append(a.productCalls, productID)
	gate := a.productGates[productID]
	a.mu.Unlock()

	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.productErrs[productID]; err != nil {
		return nil, err
	}
	p, ok := a.products[productID]
	if !ok {
		return nil, errors.New("no such product")
	}
	cp := *p
	return &cp, nil
}

func (a *fakeAPI) ListCategories(_ context.Context) ([]models.Category, error) {
	a.mu.Lock()
	gate := a.categoriesGate
	a.mu.Unlock()

	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.categoriesErr != nil {
		return nil, a.categoriesErr
	}
	return append([]models.Category(nil), a.categories...), nil
}

func (a *fakeAPI) UpdateProduct(_ context.Context, productID string, payload *client.UpdatePayload, credential string) (*models.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.updates = append(a.updates, updateCall{productID: productID, payload: payload, credential: credential})
	if a.updateErr != nil {
		return nil, a.updateErr
	}
	cp := *a.products[productID]
	return &cp, nil
}

func (a *fakeAPI) calledProduct(productID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range a.productCalls {
		if id == productID {
			return true
		}
	}
	return false
}

func (a *fakeAPI) updateCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.updates)
}

type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	paths     []string
}

func (r *recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) snapshot() (successes, errors, paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...), append([]string(nil), r.errors...), append([]string(nil), r.paths...)
}

type fakeScheduler struct {
	mu      sync.Mutex
	delays  []time.Duration
	fns     []func()
	stopped int
}

func (s *fakeScheduler) afterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.fns = append(s.fns, f)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.stopped++
		return true
	}
}

func (s *fakeScheduler) fire() {
	s.mu.Lock()
	fns := append([]func(){}, s.fns...)
	s.mu.Unlock()
	for _, f := range fns {
		f()
	}
}
