package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/session"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "not found",
			err:         fmt.Errorf("%w: item", domain.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: ErrMsgResourceNotFound,
		},
		{
			name:        "resource busy",
			err:         fmt.Errorf("%w: data/caskwatch.db is in use", domain.ErrResourceBusy),
			wantStatus:  http.StatusConflict,
			wantMessage: ErrMsgResourceBusyError,
		},
		{
			name:       "unprocessable keeps detail",
			err:        fmt.Errorf("%w: PlayerName is required", domain.ErrUnprocessable),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "parse failure",
			err:         fmt.Errorf("%w: bad row", domain.ErrParse),
			wantStatus:  http.StatusBadRequest,
			wantMessage: ErrMsgDataFileBadRowError,
		},
		{
			name:        "row parse failure",
			err:         &domain.RowParseError{Row: 3, Err: errors.New("bad quantity")},
			wantStatus:  http.StatusBadRequest,
			wantMessage: ErrMsgDataFileBadRowError,
		},
		{
			name:        "lookup failure",
			err:         fmt.Errorf("%w: wiki unreachable", domain.ErrLookupFailed),
			wantStatus:  http.StatusBadGateway,
			wantMessage: ErrMsgGenericServerError,
		},
		{
			name:        "not initialized",
			err:         session.ErrNotInitialized,
			wantStatus:  http.StatusConflict,
			wantMessage: ErrMsgNotInitializedError,
		},
		{
			name:        "nil",
			err:         nil,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: ErrMsgUnknownError,
		},
		{
			name:        "short unknown error surfaces its message",
			err:         errors.New("disk full"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "disk full",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := mapServiceErrorToUserMessage(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, message)
			}
		})
	}
}

func TestResourceBusyMessageNamesRemediation(t *testing.T) {
	_, message := mapServiceErrorToUserMessage(domain.ErrResourceBusy)
	assert.Contains(t, message, "Close any program holding it open")
}
