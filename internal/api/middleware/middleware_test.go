package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/jwt"
	"github.com/m04kA/SMC-TurfService/pkg/logger"
	"github.com/m04kA/SMC-TurfService/pkg/metrics"
)

func newJWT() *jwt.Service {
	return jwt.New("test-secret", time.Hour, "turf-test")
}

func discard() *logger.Logger {
	return logger.NewWriter(io.Discard, logger.LevelError)
}

func principalEcho(t *testing.T, want domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		assert.True(t, ok)
		assert.Equal(t, want, p)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	svc := newJWT()
	token, err := svc.GenerateToken("user-a", "admin")
	require.NoError(t, err)

	h := Auth(svc, discard())(principalEcho(t, domain.Principal{UserID: "user-a", Role: domain.RoleAdmin}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuth_Rejects(t *testing.T) {
	svc := newJWT()
	other := jwt.New("other-secret", time.Hour, "turf-test")
	foreign, err := other.GenerateToken("user-a", "user")
	require.NoError(t, err)

	h := Auth(svc, discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	for _, header := range []string{"", "Bearer ", "Basic abc", "Bearer " + foreign} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireAdmin(discard())(ok)

	cases := []struct {
		name      string
		principal *domain.Principal
		want      int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"user", &domain.Principal{UserID: "u", Role: domain.RoleUser}, http.StatusForbidden},
		{"admin", &domain.Principal{UserID: "a", Role: domain.RoleAdmin}, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.principal != nil {
				r = r.WithContext(WithPrincipal(r.Context(), *tc.principal))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("turf-test", reg)

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "turf-test"))
	router.HandleFunc("/facilities/{facilityId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/facilities/123", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["path"] == "/facilities/{facilityId}" && labels["status"] == "404" {
				found = true
				assert.Equal(t, 1.0, metric.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found)
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	h := MetricsMiddleware(nil, "x")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
