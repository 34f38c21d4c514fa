package handler

import (
	"net/http"

	"github.com/jhardel/caskwatch/internal/session"
)

// PlayerNameResponse carries the tracked player's name.
type PlayerNameResponse struct {
	PlayerName string `json:"player_name"`
}

// HandleGetPlayerName handles GET /player/name.
func HandleGetPlayerName(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := sess.PlayerName()
		if err != nil {
			respondServiceError(w, r, "Get player name", err)
			return
		}

		respondJSON(w, http.StatusOK, PlayerNameResponse{PlayerName: name})
	}
}

// HandleGetPlayerStats handles GET /player/statistics?player_name=<name>.
func HandleGetPlayerStats(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerName, ok := GetQueryParam(r, w, "player_name")
		if !ok {
			return
		}

		stats, err := sess.Stats(r.Context(), playerName)
		if err != nil {
			respondServiceError(w, r, "Get player statistics", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stats})
	}
}
