package domain

// InitParams carries the initialization payload for a tracked player.
// Rebuild is transient: it controls whether the backing store is recreated
// during initialization and carries no meaning once stored.
type InitParams struct {
	PlayerName string `json:"player_name" validate:"required"`
	Tier4Luck  bool   `json:"tier_4_luck"`
	Orlando    bool   `json:"orlando"`
	Rebuild    bool   `json:"rebuild"`
}

// PlayerStatistics holds the running casket counters for one player.
// Keyed by PlayerName.
type PlayerStatistics struct {
	PlayerName    string `json:"player_name"`
	OpenedCaskets int    `json:"opened_caskets"`
	Uniques       int    `json:"uniques"`
	Broadcasts    int    `json:"broadcasts"`
}

// Reset zeroes every counter.
func (s *PlayerStatistics) Reset() {
	s.OpenedCaskets = 0
	s.Uniques = 0
	s.Broadcasts = 0
}
