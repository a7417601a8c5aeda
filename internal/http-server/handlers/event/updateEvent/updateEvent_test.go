package updateEvent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activityCalendar/internal/http-server/handlers/event/createEvent"
	"activityCalendar/internal/http-server/handlers/event/updateEvent/mocks"
	"activityCalendar/internal/lib/logger/handlers/slogdiscard"
	"activityCalendar/internal/models"
	"activityCalendar/internal/schedule"
	"activityCalendar/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	loc := time.UTC

	event := models.Event{
		ID:             5,
		StartsAt:       time.Date(2025, time.March, 6, 15, 0, 0, 0, loc),
		AgeGroup:       models.AgeGroupSchool,
		Type:           models.EventTypeLanguageClass,
		Capacity:       10,
		ParticipantIDs: []int64{1, 9},
	}

	updated := event
	updated.IsActive = true
	updated.Occupancy = 2

	validBody := `{
		"starts_at": "2025-03-06T15:00",
		"age_group": "school",
		"type": "language_class",
		"capacity": 10,
		"participant_ids": [1, 9]
	}`

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.EventUpdater)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, event).Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response createEvent.EventResponse
				require.NoError(t, json.Unmarshal([]byte(body), &response))

				assert.Equal(t, "OK", response.Status)
				require.NotNil(t, response.Event)
				assert.Equal(t, int64(5), response.Event.ID)
				assert.Equal(t, []int64{1, 9}, response.Event.ParticipantIDs)
			},
		},
		{
			name:           "Invalid id",
			eventID:        "x",
			requestBody:    validBody,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        "5",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Not found",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, event).
					Return(models.Event{}, fmt.Errorf("schedule.UpdateEvent: %w", storage.ErrEventNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:        "Slot taken",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, event).
					Return(models.Event{}, fmt.Errorf("schedule.UpdateEvent: %w", schedule.ErrSlotTaken))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"time slot already taken"}`,
		},
		{
			name:        "Insert failed after deletions",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				err := &schedule.RosterError{EventID: 5, Stage: schedule.StageInsert, Err: errors.New("timeout")}
				m.On("UpdateEvent", mock.Anything, event).
					Return(models.Event{}, fmt.Errorf("schedule.UpdateEvent: %w", err))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"event updated but new participants were not added; removed participants stay removed"}`,
		},
		{
			name:        "Delete failed",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				err := &schedule.RosterError{EventID: 5, Stage: schedule.StageDelete, Err: errors.New("timeout")}
				m.On("UpdateEvent", mock.Anything, event).Return(models.Event{}, err)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"event updated but participants were not changed"}`,
		},
		{
			name:        "Internal server error",
			eventID:     "5",
			requestBody: validBody,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, event).Return(models.Event{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewEventUpdater(t)
			tc.mockSetup(mockUpdater)

			router := chi.NewRouter()
			router.Put("/events/{id}", New(logger, mockUpdater, loc))

			req, err := http.NewRequest(http.MethodPut, "/events/"+tc.eventID, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
