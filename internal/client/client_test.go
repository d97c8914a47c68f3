package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/catalogadmin/internal/apperrors"
)

const productJSONBody = `{"product":{"id":"prod_1","name":"Mug","description":"Ceramic","price":"12.50",
"stock":4,"category_id":2,"currency":"USD","featured":true,"images":["/uploads/a.png"],
"created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z"}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1/", srv.Client())
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/products/prod_1", r.URL.Path)
		_, _ = w.Write([]byte(productJSONBody))
	})

	p, err := c.GetProduct(context.Background(), "prod_1")
	require.NoError(t, err)

	assert.Equal(t, "Mug", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, int64(2), p.CategoryID)
	assert.True(t, p.Featured)
	assert.Equal(t, []string{"/uploads/a.png"}, p.Images)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), p.CreatedAt.UTC())
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"product not found: prod_9"}}`))
	})

	_, err := c.GetProduct(context.Background(), "prod_9")

	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "prod_9", nf.ID)
}

func TestGetProductWithoutProductIsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := c.GetProduct(context.Background(), "prod_1")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetProductServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProduct(context.Background(), "prod_1")
	assert.EqualError(t, err, "get product: unexpected status 500: Internal Server Error")
}

func TestGetProductTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetProduct(ctx, "prod_1")

	var te *apperrors.TimeoutError
	assert.True(t, errors.As(err, &te), "got %v", err)
}

func TestListCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"categories":[{"id":1,"name":"Apparel"},{"id":2,"name":"Home"}]}`))
	})

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Home", cats[1].Name)
}

func TestListCategoriesMissingKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUpdateProductSendsMultipartWithCredential(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Big mug", r.FormValue("name"))
		assert.Equal(t, "false", r.FormValue("featured"))

		files := r.MultipartForm.File[ImageField]
		require.Len(t, files, 2)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "bbb", string(data))

		_, _ = w.Write([]byte(productJSONBody))
	})

	payload := &UpdatePayload{
		Fields: []Field{{"name", "Big mug"}, {"featured", "false"}},
		Files: []File{
			{Filename: "a.png", ContentType: "image/png", Data: []byte("aaa")},
			{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("bbb")},
		},
	}

	p, err := c.UpdateProduct(context.Background(), "prod_1", payload, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "prod_1", p.ID)
}

func TestUpdateProductOmitsEmptyCredential(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(productJSONBody))
	})

	_, err := c.UpdateProduct(context.Background(), "prod_1", &UpdatePayload{}, "")
	assert.NoError(t, err)
}

func TestUpdateProductEmptyBodyIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.UpdateProduct(context.Background(), "prod_1", &UpdatePayload{}, "tok")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestUpdateProductStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusBadRequest, func(t *testing.T, err error) {
			var ve *apperrors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "price", ve.Field)
			assert.Equal(t, "price must be a number", ve.Message)
		}},
		{http.StatusUnauthorized, func(t *testing.T, err error) {
			var ue *apperrors.UnauthorizedError
			assert.True(t, errors.As(err, &ue))
		}},
		{http.StatusServiceUnavailable, func(t *testing.T, err error) {
			var se *apperrors.ServiceUnavailableError
			assert.True(t, errors.As(err, &se))
		}},
		{http.StatusGatewayTimeout, func(t *testing.T, err error) {
			var te *apperrors.TimeoutError
			assert.True(t, errors.As(err, &te))
		}},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"price must be a number","param":"price"}}`))
			})

			_, err := c.UpdateProduct(context.Background(), "prod_1", &UpdatePayload{}, "tok")
			tt.check(t, err)
		})
	}
}

func TestPayloadValue(t *testing.T) {
	p := &UpdatePayload{Fields: []Field{{"name", "Mug"}}}

	v, ok := p.Value("name")
	assert.True(t, ok)
	assert.Equal(t, "Mug", v)

	_, ok = p.Value("price")
	assert.False(t, ok)
}
