package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sammk21/ecommerce-admin/internal/auth"
)

const testCred = auth.Credential("test-token")

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			"defaults for zero values",
			ListParams{},
			ListParams{Page: 1, Limit: 10, Sort: "sku", Order: "asc"},
		},
		{
			"valid params pass through",
			ListParams{Page: 3, Limit: 25, Sort: "price", Order: "desc"},
			ListParams{Page: 3, Limit: 25, Sort: "price", Order: "desc"},
		},
		{
			"unknown sort field falls back",
			ListParams{Page: 1, Limit: 10, Sort: "password; DROP TABLE", Order: "sideways"},
			ListParams{Page: 1, Limit: 10, Sort: "sku", Order: "asc"},
		},
		{
			"oversized limit clamped",
			ListParams{Page: -2, Limit: 9999, Sort: "name", Order: "asc"},
			ListParams{Page: 1, Limit: 10, Sort: "name", Order: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestListParsesEnvelope(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"products":[{"id":"p1","sku":"SKU-1","name":"Chair","price":19.99,"images":["u1"]}],"total":42,"pages":5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res := c.List(context.Background(), testCred, ListParams{Page: 2, Limit: 10, Sort: "name", Order: "desc"})

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "sort=name")
	assert.Contains(t, gotQuery, "order=desc")

	assert.Equal(t, 42, res.Total)
	assert.Equal(t, 5, res.TotalPages)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Chair", res.Products[0].Name)
	assert.True(t, res.Products[0].Price.Equal(decimal.RequireFromString("19.99")))
}

func TestListDegradesToEmptyPage(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		res := NewClient(srv.URL, time.Second).List(context.Background(), testCred, ListParams{})
		assert.Empty(t, res.Products)
		assert.Zero(t, res.TotalPages)
	})

	t.Run("connection refused", func(t *testing.T) {
		res := NewClient("http://127.0.0.1:1", 200*time.Millisecond).List(context.Background(), testCred, ListParams{})
		assert.Empty(t, res.Products)
		assert.Zero(t, res.TotalPages)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		res := NewClient(srv.URL, time.Second).List(context.Background(), testCred, ListParams{})
		assert.Empty(t, res.Products)
	})
}

func TestGetDistinguishesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/p1":
			_, _ = w.Write([]byte(`{"data":{"id":"p1","sku":"SKU-1","name":"Chair","price":19.99}}`))
		case "/products/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	p, err := c.Get(context.Background(), testCred, "p1")
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.SKU)

	_, err = c.Get(context.Background(), testCred, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get(context.Background(), testCred, "broken")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusInternalServerError, rerr.Status)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCreateSendsBearerAndBody(t *testing.T) {
	var gotMethod, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	rec := Record{Name: "Chair", Price: decimal.RequireFromString("19.99"), Images: []string{"u1"}}
	require.NoError(t, c.Create(context.Background(), testCred, rec))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.JSONEq(t, `{"name":"Chair","price":19.99,"images":["u1"]}`, gotBody)
}

func TestMutationsReturnRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	rec := Record{Name: "Chair", Price: decimal.New(1, 0), Images: []string{}}

	var rerr *RemoteError
	require.ErrorAs(t, c.Create(context.Background(), testCred, rec), &rerr)
	assert.Equal(t, "create", rerr.Op)

	require.ErrorAs(t, c.Update(context.Background(), testCred, "p1", rec), &rerr)
	assert.Equal(t, "update", rerr.Op)

	require.ErrorAs(t, c.Delete(context.Background(), testCred, "p1"), &rerr)
	assert.Equal(t, "delete", rerr.Op)
}

func TestDeleteSucceedsOnNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	assert.NoError(t, c.Delete(context.Background(), testCred, "p1"))
}
