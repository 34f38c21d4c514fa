package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/metrics"
)

// InsertInitParams stores the initialization record, keyed by player name.
func (s *Store) InsertInitParams(ctx context.Context, params domain.InitParams, checkExistence bool) error {
	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM initparams WHERE player_name = ?", params.PlayerName)
		if err != nil {
			return fmt.Errorf("check initparams: %w", err)
		}
		if found {
			return nil
		}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO initparams (player_name, tier_4_luck, orlando, rebuild) VALUES (?, ?, ?, ?)",
		params.PlayerName, params.Tier4Luck, params.Orlando, params.Rebuild)
	if err != nil {
		return fmt.Errorf("insert initparams: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("initparams").Inc()
	return nil
}

// InsertStatistics stores the counters row, keyed by player name.
func (s *Store) InsertStatistics(ctx context.Context, stats domain.PlayerStatistics, checkExistence bool) error {
	if checkExistence {
		found, err := s.exists(ctx, "SELECT 1 FROM statistics WHERE player_name = ?", stats.PlayerName)
		if err != nil {
			return fmt.Errorf("check statistics: %w", err)
		}
		if found {
			return nil
		}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO statistics (player_name, opened_caskets, uniques, broadcasts) VALUES (?, ?, ?, ?)",
		stats.PlayerName, stats.OpenedCaskets, stats.Uniques, stats.Broadcasts)
	if err != nil {
		return fmt.Errorf("insert statistics: %w", err)
	}
	metrics.EntitiesPersisted.WithLabelValues("statistics").Inc()
	return nil
}

// GetStatsByPlayer returns the counters for a player, or domain.ErrNotFound.
func (s *Store) GetStatsByPlayer(ctx context.Context, playerName string) (*domain.PlayerStatistics, error) {
	var stats domain.PlayerStatistics
	err := s.db.QueryRowContext(ctx,
		"SELECT player_name, opened_caskets, uniques, broadcasts FROM statistics WHERE player_name = ?",
		playerName).
		Scan(&stats.PlayerName, &stats.OpenedCaskets, &stats.Uniques, &stats.Broadcasts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %q", domain.ErrNotFound, playerName)
	}
	if err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}
	return &stats, nil
}

// UpdateStatistics writes the current counters back for the player.
func (s *Store) UpdateStatistics(ctx context.Context, stats domain.PlayerStatistics) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE statistics SET opened_caskets = ?, uniques = ?, broadcasts = ? WHERE player_name = ?",
		stats.OpenedCaskets, stats.Uniques, stats.Broadcasts, stats.PlayerName)
	if err != nil {
		return fmt.Errorf("update statistics: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update statistics: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: player %q", domain.ErrNotFound, stats.PlayerName)
	}
	return nil
}
