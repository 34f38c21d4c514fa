// Package ingest parses the delimited reward catalog into deduplicated
// entity collections.
//
// Error policy: a malformed row aborts the whole ingest and surfaces a
// *domain.RowParseError naming the zero-based data row. Skip-and-continue
// was rejected because a partially ingested catalog makes the deduplicated
// collections depend on which rows happened to fail.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/logger"
	"github.com/jhardel/caskwatch/internal/metrics"
	"github.com/jhardel/caskwatch/internal/price"
)

// ModifierNone is the literal catalog value meaning "no modifier".
const ModifierNone = "none"

// Row is one raw catalog record. Every field arrives as text; the splitting
// grammar lives in the parse helpers below.
type Row struct {
	DisplayName string `csv:"display_name"`
	Quantity    string `csv:"quantity"`
	IsUnique    string `csv:"is_unique"`
	Noted       string `csv:"noted"`
	IsBroadcast string `csv:"is_broadcast"`
	Sources     string `csv:"sources"`
	Table       string `csv:"table"`
	Price       string `csv:"price"`
	Modifiers   string `csv:"modifiers"`
	ImageID     string `csv:"image_id"`
	Category    string `csv:"category"`
}

// Ingestor accumulates the four entity collections across rows. Each
// collection holds distinct values only, in first-seen order; dedup compares
// full value equality against everything accumulated so far.
type Ingestor struct {
	Sources    []domain.DropSource
	Quantities []domain.Quantity
	Modifiers  []domain.Modifier
	Items      []domain.Item
}

// New returns an empty Ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// LoadFile reads a catalog CSV and ingests every row.
func (g *Ingestor) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return g.Ingest(rows)
}

// Ingest processes rows in order. Ingesting identical rows again is a no-op
// for the collections, though RowsProcessed still counts every row.
func (g *Ingestor) Ingest(rows []Row) error {
	for i, row := range rows {
		if err := g.ingestRow(row); err != nil {
			return &domain.RowParseError{Row: i, Err: err}
		}
		metrics.RowsProcessed.Inc()
	}
	return nil
}

func (g *Ingestor) ingestRow(row Row) error {
	sources, err := parseSources(row.Sources)
	if err != nil {
		return err
	}
	for _, src := range sources {
		if !containsSource(g.Sources, src) {
			g.Sources = append(g.Sources, src)
		}
	}

	quantity, err := parseQuantity(row.Quantity)
	if err != nil {
		return err
	}
	if !containsQuantity(g.Quantities, quantity) {
		g.Quantities = append(g.Quantities, quantity)
	}

	var modifier *domain.Modifier
	if !strings.EqualFold(row.Modifiers, ModifierNone) {
		parsed, err := parseModifier(row.Modifiers)
		if err != nil {
			return err
		}
		modifier = &parsed
		if !containsModifier(g.Modifiers, parsed) {
			g.Modifiers = append(g.Modifiers, parsed)
		}
	}

	isUnique, err := parseBool(row.IsUnique)
	if err != nil {
		return fmt.Errorf("field is_unique: %w", err)
	}
	noted, err := parseBool(row.Noted)
	if err != nil {
		return fmt.Errorf("field noted: %w", err)
	}
	isBroadcast, err := parseBool(row.IsBroadcast)
	if err != nil {
		return fmt.Errorf("field is_broadcast: %w", err)
	}

	itemPrice, err := parsePrice(row.Price)
	if err != nil {
		return err
	}

	imageID, err := strconv.Atoi(strings.TrimSpace(row.ImageID))
	if err != nil {
		return fmt.Errorf("%w: image_id %q is not an integer", domain.ErrParse, row.ImageID)
	}

	item := domain.Item{
		DisplayName:  row.DisplayName,
		InternalName: domain.InternalName(row.DisplayName),
		Quantity:     quantity,
		IsUnique:     isUnique,
		IsBroadcast:  isBroadcast,
		Noted:        noted,
		Sources:      sources,
		DropTable:    row.Table,
		Price:        itemPrice,
		Modifiers:    modifier,
		ImageID:      imageID,
		Category:     row.Category,
	}
	if !containsItem(g.Items, item) {
		g.Items = append(g.Items, item)
	}
	return nil
}

// ResolvePrices fills unresolved item prices through the external lookup.
// Held separate from parsing so a flaky price source can be retried without
// re-ingesting. A failed lookup (domain.ErrLookupFailed) leaves the price
// unresolved; any other error aborts.
func (g *Ingestor) ResolvePrices(ctx context.Context, lookup price.Lookup) error {
	log := logger.FromContext(ctx)
	for i := range g.Items {
		if g.Items[i].Price != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		value, err := lookup.Price(ctx, g.Items[i].InternalName)
		if err != nil {
			if errors.Is(err, domain.ErrLookupFailed) {
				metrics.PriceLookupFailures.Inc()
				log.Warn("Price unresolved", "item", g.Items[i].InternalName, "error", err)
				continue
			}
			return err
		}
		g.Items[i].Price = &value
	}
	return nil
}

// parseSources splits "name@rate-name@rate" segments, deduplicating within
// the field while keeping order. Rates are evaluated eagerly so a bad
// expression fails the row.
func parseSources(data string) ([]domain.DropSource, error) {
	var sources []domain.DropSource
	for _, segment := range strings.Split(data, "-") {
		parts := strings.SplitN(segment, "@", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: source segment %q is not name@rate", domain.ErrParse, segment)
		}
		src, err := domain.NewDropSource(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		if !containsSource(sources, src) {
			sources = append(sources, src)
		}
	}
	return sources, nil
}

// parseQuantity parses "min-max". The min <= max ordering is enforced here,
// at the input boundary, rather than by the Quantity type.
func parseQuantity(data string) (domain.Quantity, error) {
	parts := strings.Split(data, "-")
	if len(parts) != 2 {
		return domain.Quantity{}, fmt.Errorf("%w: quantity %q is not min-max", domain.ErrParse, data)
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Quantity{}, fmt.Errorf("%w: quantity minimum %q is not an integer", domain.ErrParse, parts[0])
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Quantity{}, fmt.Errorf("%w: quantity maximum %q is not an integer", domain.ErrParse, parts[1])
	}
	if min > max {
		return domain.Quantity{}, fmt.Errorf("%w: quantity %q has min > max", domain.ErrParse, data)
	}
	return domain.Quantity{Min: min, Max: max}, nil
}

// parseModifier parses "quantity=<min-max>,sources=<name@rate-...>".
func parseModifier(data string) (domain.Modifier, error) {
	parts := strings.SplitN(data, ",", 2)
	if len(parts) != 2 {
		return domain.Modifier{}, fmt.Errorf("%w: modifier %q is missing its sources pair", domain.ErrParse, data)
	}

	quantityPair := strings.SplitN(parts[0], "=", 2)
	if len(quantityPair) != 2 || strings.TrimSpace(quantityPair[0]) != "quantity" {
		return domain.Modifier{}, fmt.Errorf("%w: modifier %q does not start with quantity=", domain.ErrParse, data)
	}
	sourcesPair := strings.SplitN(parts[1], "=", 2)
	if len(sourcesPair) != 2 || strings.TrimSpace(sourcesPair[0]) != "sources" {
		return domain.Modifier{}, fmt.Errorf("%w: modifier %q does not carry sources=", domain.ErrParse, data)
	}

	quantity, err := parseQuantity(quantityPair[1])
	if err != nil {
		return domain.Modifier{}, err
	}
	sources, err := parseSources(sourcesPair[1])
	if err != nil {
		return domain.Modifier{}, err
	}
	return domain.Modifier{Quantity: quantity, Sources: sources}, nil
}

// parseBool accepts the catalog's boolean spellings, case-insensitively.
func parseBool(data string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(data)) {
	case "true", "t", "1", "yes":
		return true, nil
	case "false", "f", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean value", domain.ErrParse, data)
	}
}

// parsePrice returns nil for the literal "None" (any casing), leaving the
// price to the resolution pass.
func parsePrice(data string) (*int, error) {
	if strings.EqualFold(strings.TrimSpace(data), "none") {
		return nil, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not an integer", domain.ErrParse, data)
	}
	return &value, nil
}

func containsSource(list []domain.DropSource, s domain.DropSource) bool {
	for _, existing := range list {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

func containsQuantity(list []domain.Quantity, q domain.Quantity) bool {
	for _, existing := range list {
		if existing == q {
			return true
		}
	}
	return false
}

func containsModifier(list []domain.Modifier, m domain.Modifier) bool {
	for _, existing := range list {
		if existing.Equal(m) {
			return true
		}
	}
	return false
}

func containsItem(list []domain.Item, it domain.Item) bool {
	for _, existing := range list {
		if existing.Equal(it) {
			return true
		}
	}
	return false
}
