package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/metrics"
)

// Inserts commit per entity: there is no batched transaction, so an
// interrupted build leaves whole rows only, and re-running is safe because
// every insert is existence-checked against its natural key.

// InsertDropSource stores src unless an equal (name, rate) row exists.
func (s *Store) InsertDropSource(ctx context.Context, src domain.DropSource, checkExistence bool) error {
	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM dropsource WHERE name = ? AND rate = ?", src.Name, src.Rate)
		if err != nil {
			return fmt.Errorf("check dropsource: %w", err)
		}
		if found {
			return nil
		}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO dropsource (name, rate, decimal_rate) VALUES (?, ?, ?)",
		src.Name, src.Rate, src.DecimalRate)
	if err != nil {
		return fmt.Errorf("insert dropsource: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("dropsource").Inc()
	return nil
}

// InsertQuantity stores q unless an equal (min, max) row exists.
func (s *Store) InsertQuantity(ctx context.Context, q domain.Quantity, checkExistence bool) error {
	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM quantity WHERE min = ? AND max = ?", q.Min, q.Max)
		if err != nil {
			return fmt.Errorf("check quantity: %w", err)
		}
		if found {
			return nil
		}
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO quantity (min, max) VALUES (?, ?)", q.Min, q.Max)
	if err != nil {
		return fmt.Errorf("insert quantity: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("quantity").Inc()
	return nil
}

// InsertModifier stores m. The natural key is the encoded form of the
// referenced quantity - fragile on purpose, it mirrors how modifier
// identity is defined everywhere else in the system.
func (s *Store) InsertModifier(ctx context.Context, m domain.Modifier, checkExistence bool) error {
	quantityJSON, err := encode(m.Quantity)
	if err != nil {
		return fmt.Errorf("encode modifier quantity: %w", err)
	}
	sourcesJSON, err := encode(m.Sources)
	if err != nil {
		return fmt.Errorf("encode modifier sources: %w", err)
	}

	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM modifier WHERE quantity = ?", quantityJSON)
		if err != nil {
			return fmt.Errorf("check modifier: %w", err)
		}
		if found {
			return nil
		}
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO modifier (quantity, sources) VALUES (?, ?)", quantityJSON, sourcesJSON)
	if err != nil {
		return fmt.Errorf("insert modifier: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("modifier").Inc()
	return nil
}

// InsertItem stores it. Persistence keys items by display_name alone, a
// looser key than the full-value equality the ingestor dedups with; the
// display-name key governs round-trips.
func (s *Store) InsertItem(ctx context.Context, it domain.Item, checkExistence bool) error {
	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM item WHERE display_name = ?", it.DisplayName)
		if err != nil {
			return fmt.Errorf("check item: %w", err)
		}
		if found {
			return nil
		}
	}

	quantityJSON, err := encode(it.Quantity)
	if err != nil {
		return fmt.Errorf("encode item quantity: %w", err)
	}
	sourcesJSON, err := encode(it.Sources)
	if err != nil {
		return fmt.Errorf("encode item sources: %w", err)
	}
	var modifiersJSON any
	if it.Modifiers != nil {
		encoded, err := encode(*it.Modifiers)
		if err != nil {
			return fmt.Errorf("encode item modifiers: %w", err)
		}
		modifiersJSON = encoded
	}
	var price any
	if it.Price != nil {
		price = *it.Price
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO item (display_name, internal_name, quantity, is_unique, is_broadcast, noted,
			sources, droptable, price, modifiers, image_id, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.DisplayName, it.InternalName, quantityJSON, it.IsUnique, it.IsBroadcast, it.Noted,
		sourcesJSON, it.DropTable, price, modifiersJSON, it.ImageID, it.Category)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("item").Inc()
	return nil
}

const itemColumns = `display_name, internal_name, quantity, is_unique, is_broadcast, noted,
	sources, droptable, price, modifiers, image_id, category`

// GetItemByName reconstructs the full item for a display name, decoding the
// opaque relation columns back into nested values. Returns
// domain.ErrNotFound when absent.
func (s *Store) GetItemByName(ctx context.Context, displayName string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM item WHERE display_name = ?", displayName)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %q", domain.ErrNotFound, displayName)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns every stored item in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+itemColumns+" FROM item ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		item          domain.Item
		quantityJSON  string
		sourcesJSON   string
		modifiersJSON sql.NullString
		price         sql.NullInt64
	)
	err := row.Scan(&item.DisplayName, &item.InternalName, &quantityJSON,
		&item.IsUnique, &item.IsBroadcast, &item.Noted,
		&sourcesJSON, &item.DropTable, &price, &modifiersJSON,
		&item.ImageID, &item.Category)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(quantityJSON), &item.Quantity); err != nil {
		return nil, fmt.Errorf("decode quantity column: %w", err)
	}
	if err := json.Unmarshal([]byte(sourcesJSON), &item.Sources); err != nil {
		return nil, fmt.Errorf("decode sources column: %w", err)
	}
	if modifiersJSON.Valid {
		var mod domain.Modifier
		if err := json.Unmarshal([]byte(modifiersJSON.String), &mod); err != nil {
			return nil, fmt.Errorf("decode modifiers column: %w", err)
		}
		item.Modifiers = &mod
	}
	if price.Valid {
		value := int(price.Int64)
		item.Price = &value
	}
	return &item, nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
