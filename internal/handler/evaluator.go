package handler

import (
	"net/http"

	"github.com/jhardel/caskwatch/internal/logger"
	"github.com/jhardel/caskwatch/internal/session"
)

// UpdateEvaluatorRequest records one opened casket.
type UpdateEvaluatorRequest struct {
	Value     int  `json:"value"`
	Unique    bool `json:"unique"`
	Broadcast bool `json:"broadcast"`
}

// HandleEvaluatorInfo handles GET /evaluator/info, returning the current
// wealth snapshot for the tracked player.
func HandleEvaluatorInfo(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := sess.EvaluatorInfo()
		if err != nil {
			respondServiceError(w, r, "Evaluator info", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: info})
	}
}

// HandleEvaluatorUpdate handles POST /evaluator/update.
func HandleEvaluatorUpdate(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UpdateEvaluatorRequest
		if err := DecodeRequest(r, w, &req, "Update evaluator"); err != nil {
			return
		}

		log.Debug("Recording casket", "value", req.Value, "unique", req.Unique, "broadcast", req.Broadcast)

		if err := sess.RecordCasket(r.Context(), req.Value, req.Unique, req.Broadcast); err != nil {
			respondServiceError(w, r, "Update evaluator", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Casket recorded."})
	}
}

// HandleEvaluatorReset handles POST /evaluator/reset, restarting the tracking
// window and zeroing the persisted counters.
func HandleEvaluatorReset(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sess.ResetEvaluator(r.Context()); err != nil {
			respondServiceError(w, r, "Reset evaluator", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Evaluator reset."})
	}
}
