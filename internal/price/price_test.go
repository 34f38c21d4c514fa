package price

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhardel/caskwatch/internal/domain"
)

func TestPriceParsesExchangePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Exchange:Ring_of_wealth", r.URL.Path)
		fmt.Fprint(w, `<html><span id="GEPrice">12,345</span></html>`)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL, 5*time.Second)
	value, err := client.Price(context.Background(), "Ring_of_wealth")
	require.NoError(t, err)
	assert.Equal(t, 12345, value)
}

func TestPriceMissingMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>no price here</html>`)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL, 5*time.Second)
	_, err := client.Price(context.Background(), "Ring_of_wealth")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}

func TestPriceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL, 5*time.Second)
	_, err := client.Price(context.Background(), "Unknown_item")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}

func TestPriceUnreachableHost(t *testing.T) {
	client := NewWikiClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Price(context.Background(), "Ring_of_wealth")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}
