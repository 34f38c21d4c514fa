package handler

import (
	"net/http"

	"github.com/jhardel/caskwatch/internal/session"
)

// HandleGetItem handles GET /items?item_name=<display name>.
func HandleGetItem(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemName, ok := GetQueryParam(r, w, "item_name")
		if !ok {
			return
		}

		item, err := sess.Item(r.Context(), itemName)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// HandleListItems handles GET /items/all, returning the ingested catalog in
// first-seen order.
func HandleListItems(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: sess.Items()})
	}
}
