package exportCalendar

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"activityCalendar/internal/http-server/handlers/event/exportCalendar/mocks"
	"activityCalendar/internal/lib/logger/handlers/slogdiscard"
	"activityCalendar/internal/models"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testEvents(loc *time.Location) []models.Event {
	return []models.Event{
		{
			ID:        1,
			StartsAt:  time.Date(2025, time.March, 3, 10, 0, 0, 0, loc),
			AgeGroup:  models.AgeGroupToddlers,
			Type:      models.EventTypeSensory,
			Capacity:  6,
			Occupancy: 4,
			IsActive:  true,
		},
		{
			ID:          2,
			StartsAt:    time.Date(2025, time.March, 5, 17, 30, 0, 0, loc),
			AgeGroup:    models.AgeGroupMixed,
			Type:        models.EventTypeCustom,
			Description: "Puppet theatre",
			Capacity:    20,
			IsActive:    true,
		},
	}
}

func TestExportCalendarHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	loc := time.FixedZone("MSK", 3*3600)
	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventsGetter(t)
		mockGetter.On("WeekEvents", mock.Anything, monday).Return(testEvents(loc), nil)

		req := httptest.NewRequest(http.MethodGet, "/events/export?week=2025-03-03", nil)
		rr := httptest.NewRecorder()

		New(logger, mockGetter, loc).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "week-2025-03-03.ics")

		cal, err := ical.ParseCalendar(strings.NewReader(rr.Body.String()))
		require.NoError(t, err)

		events := cal.Events()
		require.Len(t, events, 2)

		start, err := events[0].GetStartAt()
		require.NoError(t, err)
		assert.True(t, start.Equal(time.Date(2025, time.March, 3, 7, 0, 0, 0, time.UTC)))

		end, err := events[0].GetEndAt()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, end.Sub(start))

		assert.Equal(t, "Sensory play (toddlers)", events[0].GetProperty(ical.ComponentPropertySummary).Value)
		assert.Equal(t, "Puppet theatre (mixed)", events[1].GetProperty(ical.ComponentPropertySummary).Value)
	})

	t.Run("Invalid week", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventsGetter(t)

		req := httptest.NewRequest(http.MethodGet, "/events/export?week=next", nil)
		rr := httptest.NewRecorder()

		New(logger, mockGetter, loc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"week must be a date in YYYY-MM-DD format"}`, rr.Body.String())
	})

	t.Run("Storage error", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventsGetter(t)
		mockGetter.On("WeekEvents", mock.Anything, monday).Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/events/export?week=2025-03-05", nil)
		rr := httptest.NewRecorder()

		New(logger, mockGetter, loc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"failed to get events"}`, rr.Body.String())
	})
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	out := Calendar(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), testEvents(time.UTC), stamp).Serialize()

	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "X-WR-CALNAME:Activities, week of 2025-03-03")
	assert.Contains(t, out, "UID:event-1@activity-calendar")
	assert.Contains(t, out, "DTSTART:20250303T100000Z")
	assert.Contains(t, out, "DTEND:20250305T183000Z")
	assert.Contains(t, out, "Participants: 4/6")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestCalendarEmptyWeek(t *testing.T) {
	t.Parallel()

	out := Calendar(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), nil, time.Now()).Serialize()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
