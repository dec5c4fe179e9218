package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCredentials(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/camera", r.URL.Path)
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "jane", user)
			assert.Equal(t, "secret", pass)
			fmt.Fprint(w, `[]`)
		}))
		defer srv.Close()

		c := New(srv.URL, "jane", "secret", nil)
		assert.NoError(t, c.TestCredentials(context.Background()))
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := New(srv.URL, "jane", "wrong", nil)
		err := c.TestCredentials(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestResolveNegative(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantSlug string
		wantErr  error
	}{
		{
			name:     "single match",
			response: `{"count": 1, "results": [{"slug": "mi-pacer-123-22", "frame": "22"}]}`,
			wantSlug: "mi-pacer-123-22",
		},
		{
			name:     "no match",
			response: `{"count": 0, "results": []}`,
			wantErr:  ErrNotFound,
		},
		{
			name:     "ambiguous match",
			response: `{"count": 2, "results": [{"slug": "a"}, {"slug": "b"}]}`,
			wantErr:  ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/negative/", r.URL.Path)
				assert.Equal(t, "123", r.URL.Query().Get("film"))
				assert.Equal(t, "22", r.URL.Query().Get("frame"))
				fmt.Fprint(w, tt.response)
			}))
			defer srv.Close()

			c := New(srv.URL, "u", "p", nil)
			slug, err := c.ResolveNegative(context.Background(), "123", "22")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, slug)
		})
	}
}

func TestCreateScan(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/scan/", r.URL.Path)

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var got map[string]string
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, map[string]string{
				"negative": "mi-pacer-123-22",
				"filename": "123-22-holiday.jpg",
				"date":     "2024-06-01",
			}, got)

			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"uuid": "c9bf9e57-1685-4c89-bafb-ff5af830be8a"}`)
		}))
		defer srv.Close()

		c := New(srv.URL, "u", "p", nil)
		date := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
		id, err := c.CreateScan(context.Background(), "mi-pacer-123-22", "123-22-holiday.jpg", date)
		require.NoError(t, err)
		assert.Equal(t, "c9bf9e57-1685-4c89-bafb-ff5af830be8a", id)
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		c := New(srv.URL, "u", "p", nil)
		_, err := c.CreateScan(context.Background(), "neg", "f.jpg", time.Now())
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestGetScan(t *testing.T) {
	t.Run("numbers stay exact", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/scan/", r.URL.Path)
			assert.Equal(t, "c9bf9e57-1685-4c89-bafb-ff5af830be8a", r.URL.Query().Get("uuid"))
			fmt.Fprint(w, `{"count": 1, "results": [{
				"uuid": "c9bf9e57-1685-4c89-bafb-ff5af830be8a",
				"negative": {"caption": "Beach", "latitude": -33.8688}
			}]}`)
		}))
		defer srv.Close()

		c := New(srv.URL, "u", "p", nil)
		record, err := c.GetScan(context.Background(), "c9bf9e57-1685-4c89-bafb-ff5af830be8a")
		require.NoError(t, err)

		neg, ok := record["negative"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Beach", neg["caption"])
		assert.Equal(t, json.Number("-33.8688"), neg["latitude"],
			"coordinates must come back as json.Number, not float64")
	})

	t.Run("missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count": 0, "results": []}`)
		}))
		defer srv.Close()

		c := New(srv.URL, "u", "p", nil)
		_, err := c.GetScan(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := New(srv.URL, "u", "p", nil)
		_, err := c.GetScan(context.Background(), "id")
		assert.Error(t, err)
	})
}
