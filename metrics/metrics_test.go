package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdigger/res"
)

func TestCollector(t *testing.T) {
	m := New()
	mux := new(res.ServeMux)
	mux.Handles(res.Paths{
		"/user/:id": {
			"GET": m.Wrap("/user/:id", func(c *res.Context) error {
				return c.Send(res.JSON{"id": c.Param("id")})
			}),
		},
		"/missing": {
			"GET": m.Wrap("/missing", func(c *res.Context) error {
				return res.ErrNotFound
			}),
		},
		"/silent": {
			"GET": m.Wrap("/silent", func(c *res.Context) error {
				return nil
			}),
		},
	})
	m.Register(mux)

	for _, path := range []string{"/user/1", "/user/2", "/missing", "/silent"} {
		r := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.requests.WithLabelValues("GET", "/user/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.requests.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.requests.WithLabelValues("GET", "/silent", "204")))
}

func TestRegister(t *testing.T) {
	m := New()
	mux := new(res.ServeMux)
	mux.Handles(res.Paths{
		"/test": {
			"GET": m.Wrap("/test", func(c *res.Context) error {
				return c.Send("ok")
			}),
		},
	})
	m.Register(mux)

	r := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest("GET", Path, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"),
		"metrics output: %s", w.Body.String())
}
