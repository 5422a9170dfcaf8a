package ratefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeed(t *testing.T, status int, body string) *Source {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CLP", r.URL.Query().Get("code"))
		assert.Equal(t, "true", r.URL.Query().Get("show_rate"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewSource(Config{URL: srv.URL + "/currency", Timeout: time.Second}, nil)
}

func TestSource_Tier(t *testing.T) {
	assert.Equal(t, domain.RateTierLive, NewSource(Config{}, nil).Tier())
}

func TestSource_NumericRate(t *testing.T) {
	src := newFeed(t, http.StatusOK, `{"response":{"status":"OK","currencies":[{"code":"EUR","rate":0.92},{"code":"CLP","rate":948.25}]}}`)

	rate, err := src.CLPPerUSD(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "948.25", rate.String())
}

func TestSource_StringRate(t *testing.T) {
	src := newFeed(t, http.StatusOK, `{"response":{"currencies":[{"code":"CLP","rate":"951.1"}]}}`)

	rate, err := src.CLPPerUSD(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "951.1", rate.String())
}

func TestSource_MissingCLP(t *testing.T) {
	src := newFeed(t, http.StatusOK, `{"response":{"currencies":[{"code":"EUR","rate":0.92},{"code":"CLP"}]}}`)

	_, err := src.CLPPerUSD(context.Background())
	assert.ErrorIs(t, err, ErrRateMissing)
}

func TestSource_NonOK(t *testing.T) {
	src := newFeed(t, http.StatusBadGateway, `oops`)

	_, err := src.CLPPerUSD(context.Background())

	var statusErr *ports.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestSource_MalformedPayload(t *testing.T) {
	src := newFeed(t, http.StatusOK, `{"response":`)

	_, err := src.CLPPerUSD(context.Background())
	assert.Error(t, err)
}

func TestSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src := NewSource(Config{URL: url, Timeout: 200 * time.Millisecond}, nil)
	_, err := src.CLPPerUSD(context.Background())
	assert.Error(t, err)
}
