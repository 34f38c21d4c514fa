// Package session owns the runtime state for one tracked player: settings,
// ingested catalog, backing store and wealth evaluator. It replaces what the
// overlay's previous incarnation kept in process-wide globals; a Session is
// created at initialization and passed to every operation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jhardel/caskwatch/internal/config"
	"github.com/jhardel/caskwatch/internal/database"
	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/ingest"
	"github.com/jhardel/caskwatch/internal/logger"
	"github.com/jhardel/caskwatch/internal/price"
	"github.com/jhardel/caskwatch/internal/schema"
	"github.com/jhardel/caskwatch/internal/wealth"
)

// itemCacheSize bounds the read-side item cache.
const itemCacheSize = 5

// ErrNotInitialized reports a query before a successful Initialize.
var ErrNotInitialized = errors.New("session not initialized")

// Session is the long-lived runtime object. All methods are safe for
// concurrent use; writes to the store are serialized behind the session
// mutex (the persistence engine is single-writer).
type Session struct {
	cfg      *config.Config
	prices   price.Lookup
	validate *validator.Validate

	mu        sync.Mutex
	store     *database.Store
	ingestor  *ingest.Ingestor
	settings  *domain.InitParams
	evaluator *wealth.Evaluator
	capture   domain.CaptureConfig
	itemCache *lru.Cache[string, *domain.Item]
}

// New creates an uninitialized session.
func New(cfg *config.Config, prices price.Lookup) *Session {
	cache, _ := lru.New[string, *domain.Item](itemCacheSize)
	return &Session{
		cfg:       cfg,
		prices:    prices,
		validate:  validator.New(),
		itemCache: cache,
	}
}

// Close releases the backing store.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// Initialize validates params and brings the session up for the player.
//
// With Rebuild set, the backing store file is deleted (surfacing
// domain.ErrResourceBusy if another process holds it), the catalog is
// re-ingested and prices resolved, schemas are derived from the registry in
// dependency order and materialized, and every collection is persisted in
// staged order before the player's zeroed statistics are seeded.
//
// Without Rebuild the call is idempotent: it opens the store if needed,
// seeds the player if absent and refreshes the evaluator.
func (s *Session) Initialize(ctx context.Context, params domain.InitParams) error {
	log := logger.FromContext(ctx)

	if err := s.validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnprocessable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Rebuild {
		if err := s.rebuildLocked(ctx); err != nil {
			return err
		}
	}
	if err := s.openLocked(ctx); err != nil {
		return err
	}

	// Seed the player on first sight; existence-checked inserts make this
	// idempotent across repeated initializations.
	if err := s.store.InsertInitParams(ctx, params, true); err != nil {
		return err
	}
	seed := domain.PlayerStatistics{PlayerName: params.PlayerName}
	if err := s.store.InsertStatistics(ctx, seed, true); err != nil {
		return err
	}

	stats, err := s.store.GetStatsByPlayer(ctx, params.PlayerName)
	if err != nil {
		return err
	}

	settings := params
	s.settings = &settings
	s.evaluator = wealth.New(stats)
	s.itemCache.Purge()

	log.Info("Session initialized", "player", params.PlayerName, "rebuild", params.Rebuild)
	return nil
}

// rebuildLocked tears down and repopulates the backing store.
func (s *Session) rebuildLocked(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return err
		}
		s.store = nil
	}
	if err := database.Remove(s.cfg.DBFile); err != nil {
		return err
	}

	ingestor := ingest.New()
	if err := ingestor.LoadFile(s.cfg.DataFile); err != nil {
		return err
	}
	if s.prices != nil {
		if err := ingestor.ResolvePrices(ctx, s.prices); err != nil {
			return err
		}
	}
	s.ingestor = ingestor

	if err := s.openLocked(ctx); err != nil {
		return err
	}
	if err := s.store.BuildCatalog(ctx, ingestor.Sources, ingestor.Quantities, ingestor.Modifiers, ingestor.Items); err != nil {
		return err
	}

	log.Info("Store rebuilt",
		"items", len(ingestor.Items),
		"sources", len(ingestor.Sources),
		"quantities", len(ingestor.Quantities),
		"modifiers", len(ingestor.Modifiers))
	return nil
}

func (s *Session) openLocked(ctx context.Context) error {
	if s.store != nil {
		return nil
	}
	store, err := database.Open(s.cfg.DBFile)
	if err != nil {
		return err
	}
	if err := store.Materialize(ctx, schema.Derive(schema.DefaultRegistry())); err != nil {
		store.Close()
		return err
	}
	s.store = store
	return nil
}

// PlayerName returns the tracked player, or ErrNotInitialized.
func (s *Session) PlayerName() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return "", ErrNotInitialized
	}
	return s.settings.PlayerName, nil
}

// Items returns the ingested catalog in first-seen order. Empty until a
// rebuild has run in this process.
func (s *Session) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ingestor == nil {
		return nil
	}
	return s.ingestor.Items
}

// Item looks an item up by display name, through a small LRU over the store.
func (s *Session) Item(ctx context.Context, displayName string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, ErrNotInitialized
	}
	if cached, ok := s.itemCache.Get(displayName); ok {
		return cached, nil
	}
	item, err := s.store.GetItemByName(ctx, displayName)
	if err != nil {
		return nil, err
	}
	s.itemCache.Add(displayName, item)
	return item, nil
}

// Stats returns the persisted counters for a player.
func (s *Session) Stats(ctx context.Context, playerName string) (*domain.PlayerStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, ErrNotInitialized
	}
	return s.store.GetStatsByPlayer(ctx, playerName)
}

// EvaluatorInfo snapshots the wealth evaluator.
func (s *Session) EvaluatorInfo() (wealth.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evaluator == nil {
		return wealth.Info{}, ErrNotInitialized
	}
	return s.evaluator.Info(), nil
}

// RecordCasket records one casket opening: credits its value, bumps the
// shared counters and writes them back to the store.
func (s *Session) RecordCasket(ctx context.Context, value int, unique, broadcast bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evaluator == nil || s.store == nil {
		return ErrNotInitialized
	}
	s.evaluator.AddValue(value)
	s.evaluator.RecordCasket(unique, broadcast)
	return s.store.UpdateStatistics(ctx, s.evaluator.Stats())
}

// ResetEvaluator restamps the session and zeroes counters, in memory and in
// the store.
func (s *Session) ResetEvaluator(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evaluator == nil || s.store == nil {
		return ErrNotInitialized
	}
	s.evaluator.Reset()
	return s.store.UpdateStatistics(ctx, s.evaluator.Stats())
}

// Configure stores the capture geometry for the overlay client.
func (s *Session) Configure(capture domain.CaptureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = capture
}

// Capture returns the stored capture geometry.
func (s *Session) Capture() domain.CaptureConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture
}

// Ready reports whether the backing store is reachable.
func (s *Session) Ready(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotInitialized
	}
	return s.store.Ping(ctx)
}
