// Package price resolves current market prices from the wiki exchange
// pages. Treated as a fallible external collaborator: callers decide whether
// an unresolved price matters.
package price

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jhardel/caskwatch/internal/domain"
)

// priceMarker precedes the numeric price in an exchange page.
const priceMarker = `id="GEPrice">`

// maxBodyBytes caps how much of an exchange page is read.
const maxBodyBytes = 1 << 20

// Lookup resolves a price by an item's internal name.
type Lookup interface {
	Price(ctx context.Context, internalName string) (int, error)
}

// WikiClient scrapes exchange pages for prices.
type WikiClient struct {
	baseURL string
	client  *http.Client
}

// NewWikiClient builds a client against baseURL (e.g.
// "https://runescape.wiki/w"). The timeout bounds each lookup.
func NewWikiClient(baseURL string, timeout time.Duration) *WikiClient {
	return &WikiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Price fetches the exchange page for internalName and extracts the listed
// price. Failures wrap domain.ErrLookupFailed so callers can treat them as
// "price stays unresolved".
func (c *WikiClient) Price(ctx context.Context, internalName string) (int, error) {
	url := fmt.Sprintf("%s/Exchange:%s", c.baseURL, internalName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: exchange page for %q returned %d", domain.ErrLookupFailed, internalName, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	return parsePrice(string(body), internalName)
}

func parsePrice(page, internalName string) (int, error) {
	_, after, found := strings.Cut(page, priceMarker)
	if !found {
		return 0, fmt.Errorf("%w: no price listed for %q", domain.ErrLookupFailed, internalName)
	}
	raw, _, found := strings.Cut(after, "<")
	if !found {
		return 0, fmt.Errorf("%w: malformed exchange page for %q", domain.ErrLookupFailed, internalName)
	}
	value, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable price %q for %q", domain.ErrLookupFailed, raw, internalName)
	}
	return value, nil
}
