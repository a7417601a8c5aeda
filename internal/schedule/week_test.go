package schedule

import (
	"testing"
	"time"

	"activityCalendar/internal/models"

	"github.com/smartystreets/goconvey/convey"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s unavailable: %v", name, err)
	}

	return loc
}

func TestDayOffset(t *testing.T) {
	loc := mustLoad(t, "Europe/Berlin")

	convey.Convey("Given two week starts", t, func() {
		source := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

		convey.Convey("One week apart gives seven days", func() {
			convey.So(DayOffset(source, source.AddDate(0, 0, 7)), convey.ShouldEqual, 7)
		})

		convey.Convey("Several weeks apart is not assumed to be seven", func() {
			convey.So(DayOffset(source, source.AddDate(0, 0, 21)), convey.ShouldEqual, 21)
		})

		convey.Convey("Backwards copies give a negative offset", func() {
			convey.So(DayOffset(source, source.AddDate(0, 0, -14)), convey.ShouldEqual, -14)
		})
	})

	convey.Convey("Given week starts spanning a DST switch", t, func() {
		source := time.Date(2024, 3, 25, 0, 0, 0, 0, loc)
		target := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)

		convey.Convey("The lost hour is rounded away", func() {
			convey.So(target.Sub(source), convey.ShouldEqual, 7*24*time.Hour-time.Hour)
			convey.So(DayOffset(source, target), convey.ShouldEqual, 7)
		})

		convey.Convey("The gained hour is rounded away", func() {
			autumn := time.Date(2024, 10, 21, 0, 0, 0, 0, loc)
			convey.So(DayOffset(autumn, autumn.AddDate(0, 0, 7)), convey.ShouldEqual, 7)
		})
	})
}

func TestShiftDays(t *testing.T) {
	loc := mustLoad(t, "Europe/Berlin")

	convey.Convey("Given an event at 10:30 before a DST switch", t, func() {
		start := time.Date(2024, 3, 28, 10, 30, 0, 0, loc)

		convey.Convey("Shifting by a week keeps the wall-clock time", func() {
			shifted := ShiftDays(start, 7)

			convey.So(shifted.Day(), convey.ShouldEqual, 4)
			convey.So(shifted.Month(), convey.ShouldEqual, time.April)
			convey.So(shifted.Hour(), convey.ShouldEqual, 10)
			convey.So(shifted.Minute(), convey.ShouldEqual, 30)
			convey.So(shifted.Sub(start), convey.ShouldEqual, 7*24*time.Hour-time.Hour)
		})
	})
}

func TestSameMinute(t *testing.T) {
	convey.Convey("Given a slot at 2024-03-11 10:00", t, func() {
		slot := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

		convey.Convey("Identical minutes conflict", func() {
			convey.So(SameMinute(slot, slot), convey.ShouldBeTrue)
		})

		convey.Convey("Seconds do not matter", func() {
			convey.So(SameMinute(slot, slot.Add(59*time.Second)), convey.ShouldBeTrue)
		})

		convey.Convey("One minute apart does not conflict", func() {
			convey.So(SameMinute(slot, slot.Add(time.Minute)), convey.ShouldBeFalse)
			convey.So(SameMinute(slot, slot.Add(-time.Minute)), convey.ShouldBeFalse)
		})

		convey.Convey("Same time on another day does not conflict", func() {
			convey.So(SameMinute(slot, slot.AddDate(0, 0, 1)), convey.ShouldBeFalse)
			convey.So(SameMinute(slot, slot.AddDate(0, 1, 0)), convey.ShouldBeFalse)
			convey.So(SameMinute(slot, slot.AddDate(1, 0, 0)), convey.ShouldBeFalse)
		})

		convey.Convey("HasConflict scans every existing slot", func() {
			existing := []time.Time{slot.Add(-time.Hour), slot.Add(time.Minute), slot}

			convey.So(HasConflict(slot, existing), convey.ShouldBeTrue)
			convey.So(HasConflict(slot, existing[:2]), convey.ShouldBeFalse)
			convey.So(HasConflict(slot, nil), convey.ShouldBeFalse)
		})
	})
}

func TestEventsInWeek(t *testing.T) {
	convey.Convey("Given a full event list", t, func() {
		weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
		all := []models.Event{
			{ID: 1, StartsAt: time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC), IsActive: true},
			{ID: 2, StartsAt: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), IsActive: true},
			{ID: 3, StartsAt: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), IsActive: true},
			{ID: 4, StartsAt: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), IsActive: true},
			{ID: 5, StartsAt: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), IsActive: true},
			{ID: 6, StartsAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC), IsActive: false},
		}

		convey.Convey("Only active events on the seven calendar days are selected, in day order", func() {
			found := EventsInWeek(all, weekStart)

			ids := make([]int64, 0, len(found))
			for _, e := range found {
				ids = append(ids, e.ID)
			}

			convey.So(ids, convey.ShouldResemble, []int64{3, 2, 4})
		})

		convey.Convey("Calendar days are taken in the week start's zone", func() {
			loc := time.FixedZone("UTC+3", 3*60*60)
			found := EventsInWeek(all, time.Date(2024, 3, 11, 0, 0, 0, 0, loc))

			convey.So(len(found), convey.ShouldEqual, 2)
			convey.So(found[0].ID, convey.ShouldEqual, 4)
			convey.So(found[1].ID, convey.ShouldEqual, 5)
		})

		convey.Convey("An empty list yields nothing", func() {
			convey.So(EventsInWeek(nil, weekStart), convey.ShouldBeEmpty)
		})
	})
}

func TestWeekHelpers(t *testing.T) {
	convey.Convey("Given a Wednesday afternoon", t, func() {
		wed := time.Date(2024, 3, 6, 15, 4, 0, 0, time.UTC)

		convey.Convey("StartOfWeek goes back to Monday midnight", func() {
			convey.So(StartOfWeek(wed), convey.ShouldEqual, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
		})

		convey.Convey("A Sunday belongs to the week that started six days earlier", func() {
			sun := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
			convey.So(StartOfWeek(sun), convey.ShouldEqual, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
		})

		convey.Convey("The week window is half open", func() {
			w := WeekFrom(StartOfWeek(wed))
			convey.So(w.Contains(w.Start), convey.ShouldBeTrue)
			convey.So(w.Contains(w.End), convey.ShouldBeFalse)
			convey.So(w.Contains(w.End.Add(-time.Minute)), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given date strings", t, func() {
		loc := time.FixedZone("UTC+3", 3*60*60)

		convey.Convey("Local date-times are read in the given zone", func() {
			got, err := ParseDateTime("2024-03-11T10:00", loc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Equal(time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
		})

		convey.Convey("RFC 3339 values are converted and truncated", func() {
			got, err := ParseDateTime("2024-03-11T07:00:42Z", loc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Hour(), convey.ShouldEqual, 10)
			convey.So(got.Second(), convey.ShouldEqual, 0)
		})

		convey.Convey("Garbage is rejected", func() {
			_, err := ParseDateTime("next tuesday", loc)
			convey.So(err, convey.ShouldNotBeNil)

			_, err = ParseDate("2024-13-01", loc)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
