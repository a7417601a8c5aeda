package deleteEvent

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"activityCalendar/internal/http-server/handlers/event/deleteEvent/mocks"
	"activityCalendar/internal/lib/logger/handlers/slogdiscard"
	"activityCalendar/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventDeleter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			eventID: "12",
			mockSetup: func(m *mocks.EventDeleter) {
				m.On("DeleteEvent", mock.Anything, int64(12)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:    "Already deleted",
			eventID: "12",
			mockSetup: func(m *mocks.EventDeleter) {
				m.On("DeleteEvent", mock.Anything, int64(12)).Return(fmt.Errorf("schedule.DeleteEvent: %w", storage.ErrEventNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "Invalid id",
			eventID:        "0",
			mockSetup:      func(m *mocks.EventDeleter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id"}`,
		},
		{
			name:    "Internal server error",
			eventID: "12",
			mockSetup: func(m *mocks.EventDeleter) {
				m.On("DeleteEvent", mock.Anything, int64(12)).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockDeleter := mocks.NewEventDeleter(t)
			tc.mockSetup(mockDeleter)

			router := chi.NewRouter()
			router.Delete("/events/{id}", New(logger, mockDeleter))

			req, err := http.NewRequest(http.MethodDelete, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
