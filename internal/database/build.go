package database

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/logger"
)

// BuildCatalog persists the ingested collections, honoring the dependency
// partial order: sources and quantities carry no references and load
// concurrently; modifiers wait for their quantities; items wait for
// everything they embed. Each insert commits on its own and is
// existence-checked, so a cancelled build can simply be re-run.
func (s *Store) BuildCatalog(ctx context.Context,
	sources []domain.DropSource,
	quantities []domain.Quantity,
	modifiers []domain.Modifier,
	items []domain.Item,
) error {
	log := logger.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, src := range sources {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.InsertDropSource(gctx, src, true); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, q := range quantities {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.InsertQuantity(gctx, q, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug("Catalog leaves persisted", "sources", len(sources), "quantities", len(quantities))

	for _, mod := range modifiers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.InsertModifier(ctx, mod, true); err != nil {
			return err
		}
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.InsertItem(ctx, item, true); err != nil {
			return err
		}
	}
	log.Debug("Catalog persisted", "modifiers", len(modifiers), "items", len(items))
	return nil
}
