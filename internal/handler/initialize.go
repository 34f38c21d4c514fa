package handler

import (
	"net/http"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/logger"
	"github.com/jhardel/caskwatch/internal/session"
)

// MsgInitializeSuccess is returned when initialization completes.
const MsgInitializeSuccess = "Initialization ran successful."

// HandleInitialize handles POST /initialize.
//
// The request body carries the player settings. With rebuild set the reward
// catalog is re-ingested and the backing store recreated, which fails with
// 409 if another process holds the store file open.
func HandleInitialize(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var params domain.InitParams
		if err := DecodeRequest(r, w, &params, "Initialize"); err != nil {
			return
		}

		log.Info("Initializing", "player", params.PlayerName, "rebuild", params.Rebuild)

		if err := sess.Initialize(r.Context(), params); err != nil {
			respondServiceError(w, r, "Initialize", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgInitializeSuccess})
	}
}

// HandleConfigure handles POST /configure, storing the screen-capture
// geometry the overlay client reports.
func HandleConfigure(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var capture domain.CaptureConfig
		if err := DecodeRequest(r, w, &capture, "Configure"); err != nil {
			return
		}

		sess.Configure(capture)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Configuration stored."})
	}
}
