// Package editor drives the product edit view: it loads a product and the
// category list, pre-fills the form once both are present, validates input,
// and submits the update as multipart form data.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/client"
	"github.com/yourorg/catalogadmin/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	// NavigationDelay is how long a success notification stays readable
	// before the editor leaves for the product list.
	NavigationDelay = 4 * time.Second

	ProductsPath = "/admin/products"

	MessageNotFound = "Product not found"
	MessageFailure  = "Something went wrong, please try again"
	MessageUpdated  = "Product updated successfully, redirecting to Products view"
)

// ErrNotReady is returned by Submit outside the Ready state.
var ErrNotReady = errors.New("editor is not ready for submit")

type API interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateProduct(ctx context.Context, productID string, payload *client.UpdatePayload, credential string) (*models.Product, error)
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

type Navigator interface {
	Navigate(path string)
}

type Option func(*Editor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) { e.logger = logger }
}

// WithCurrencies sets the currency options offered by the form.
func WithCurrencies(currencies ...string) Option {
	return func(e *Editor) { e.currencies = currencies }
}

func WithRedirectPath(path string) Option {
	return func(e *Editor) { e.redirectPath = path }
}

type Editor struct {
	api          API
	notifier     Notifier
	navigator    Navigator
	logger       *slog.Logger
	currencies   []string
	redirectPath string
	afterFunc    func(d time.Duration, f func()) (stop func() bool)

	mu          sync.Mutex
	gen         uint64
	productID   string
	state       State
	product     *models.Product
	categories  []models.Category
	form        *FormValues
	fieldErrors FieldErrors
	message     string
	stopNav     func() bool
}

func New(api API, notifier Notifier, navigator Navigator, opts ...Option) *Editor {
	e := &Editor{
		api:          api,
		notifier:     notifier,
		navigator:    navigator,
		logger:       slog.Default(),
		currencies:   []string{"USD"},
		redirectPath: ProductsPath,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// View is a snapshot of the editor for rendering.
type View struct {
	State       State
	ProductID   string
	Product     *models.Product
	Categories  []models.Category
	Currencies  []string
	Form        *FormValues
	FieldErrors FieldErrors
	// Message is the inline error shown in NotFound and LoadError.
	Message string
}

// ShowsForm reports whether the form should be rendered.
func (v View) ShowsForm() bool {
	switch v.State {
	case StateReady, StateSubmitting, StateNavigating:
		return v.Form != nil
	default:
		return false
	}
}

func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		State:      e.state,
		ProductID:  e.productID,
		Product:    e.product,
		Categories: slices.Clone(e.categories),
		Currencies: slices.Clone(e.currencies),
		Message:    e.message,
	}
	if e.form != nil {
		v.Form = e.form.clone()
	}
	if e.fieldErrors != nil {
		v.FieldErrors = make(FieldErrors, len(e.fieldErrors))
		for k, msg := range e.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

// Load resets the editor for productID and fetches the product and the
// categories concurrently. The form is populated by whichever fetch finishes
// last. Responses belonging to an earlier Load are discarded.
func (e *Editor) Load(ctx context.Context, productID string) View {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.stopNavigationLocked()
	e.productID = productID
	e.state = StateLoading
	e.product = nil
	e.categories = nil
	e.form = nil
	e.fieldErrors = nil
	e.message = ""
	e.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		e.loadProduct(ctx, gen, productID)
		return nil
	})
	g.Go(func() error {
		e.loadCategories(ctx, gen)
		return nil
	})
	_ = g.Wait()

	return e.View()
}

func (e *Editor) loadProduct(ctx context.Context, gen uint64, productID string) {
	product, err := e.api.GetProduct(ctx, productID)

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		e.logger.DebugContext(ctx, "discarding stale product response", "product_id", productID)
		return
	}

	notify := false
	var notFound *apperrors.NotFoundError
	switch {
	case err == nil:
		e.product = product
		e.populateLocked()
	case errors.As(err, &notFound):
		e.failLocked(StateNotFound, MessageNotFound)
	default:
		notify = e.failLocked(StateLoadError, MessageFailure)
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.WarnContext(ctx, "product load failed", "product_id", productID, "error", err)
	}
	if notify {
		e.notifier.Error(MessageFailure)
	}
}

func (e *Editor) loadCategories(ctx context.Context, gen uint64) {
	categories, err := e.api.ListCategories(ctx)

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		e.logger.DebugContext(ctx, "discarding stale categories response")
		return
	}

	notify := false
	if err == nil {
		if categories == nil {
			categories = []models.Category{}
		}
		e.categories = categories
		e.populateLocked()
	} else {
		notify = e.failLocked(StateLoadError, MessageFailure)
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.WarnContext(ctx, "category load failed", "error", err)
	}
	if notify {
		e.notifier.Error(MessageFailure)
	}
}

// populateLocked fills the form once both fetches have succeeded.
func (e *Editor) populateLocked() {
	if e.state != StateLoading || e.product == nil || e.categories == nil {
		return
	}
	e.form = formFromProduct(e.product)
	e.state = StateReady
}

// failLocked moves a loading editor into an error state and reports whether
// the failure should be announced. Not-found outranks a generic failure; a
// second failure in the same load is never announced.
func (e *Editor) failLocked(state State, message string) bool {
	switch {
	case e.state == StateLoading:
		e.state = state
		e.message = message
		return state == StateLoadError
	case e.state == StateLoadError && state == StateNotFound:
		e.state = state
		e.message = message
	}
	return false
}

// Submit validates values and, when valid, sends them as one update request
// authorized by credential. Validation failures return a *ValidationError
// without touching the network. A successful update announces itself and
// schedules navigation after NavigationDelay; a failed one is announced and
// leaves the editor Ready with the submitted values in place.
func (e *Editor) Submit(ctx context.Context, values FormValues, credential string) error {
	e.mu.Lock()
	if e.state != StateReady {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("%w (state %s)", ErrNotReady, state)
	}

	gen := e.gen
	productID := e.productID
	e.form = values.clone()

	if fieldErrors := validateForm(values, e.categories, e.currencies); fieldErrors != nil {
		e.fieldErrors = fieldErrors
		e.mu.Unlock()
		return &ValidationError{Fields: fieldErrors}
	}
	e.fieldErrors = nil
	e.state = StateSubmitting
	e.mu.Unlock()

	payload := buildPayload(values)
	_, err := e.api.UpdateProduct(ctx, productID, payload, credential)

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		e.logger.DebugContext(ctx, "discarding stale update response", "product_id", productID)
		if err != nil {
			return fmt.Errorf("update product %s: %w", productID, err)
		}
		return nil
	}

	if err != nil {
		e.state = StateReady
		e.mu.Unlock()

		e.logger.WarnContext(ctx, "product update failed", "product_id", productID, "error", err)
		e.notifier.Error(MessageFailure)
		return fmt.Errorf("update product %s: %w", productID, err)
	}

	e.state = StateNavigating
	e.stopNav = e.afterFunc(NavigationDelay, func() { e.navigate(gen) })
	e.mu.Unlock()

	e.logger.InfoContext(ctx, "product updated", "product_id", productID, "image_count", len(payload.Files))
	e.notifier.Success(MessageUpdated)
	return nil
}

func (e *Editor) navigate(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.state != StateNavigating {
		e.mu.Unlock()
		return
	}
	e.stopNav = nil
	e.form = nil
	e.fieldErrors = nil
	path := e.redirectPath
	e.mu.Unlock()

	e.navigator.Navigate(path)
}

// Close tears the editor down. Pending navigation is cancelled, in-flight
// responses are discarded and the form is dropped, so Submit fails with
// ErrNotReady until the next Load.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	e.stopNavigationLocked()
	e.state = StateClosed
	e.form = nil
	e.fieldErrors = nil
}

func (e *Editor) stopNavigationLocked() {
	if e.stopNav != nil {
		e.stopNav()
		e.stopNav = nil
	}
}
