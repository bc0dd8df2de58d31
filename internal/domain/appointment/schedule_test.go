package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name    string
		weekday Weekday
		hour    int
		minute  int
		wantErr error
	}{
		{name: "first bookable slot", weekday: Monday, hour: 8, minute: 0},
		{name: "last bookable slot", weekday: Friday, hour: 17, minute: 45},
		{name: "midday quarter past", weekday: Wednesday, hour: 12, minute: 15},
		{name: "half past", weekday: Tuesday, hour: 10, minute: 30},
		{name: "saturday rejected", weekday: Saturday, hour: 10, minute: 0, wantErr: ErrWeekendNotBookable},
		{name: "sunday rejected", weekday: Sunday, hour: 10, minute: 0, wantErr: ErrWeekendNotBookable},
		{name: "before opening", weekday: Monday, hour: 7, minute: 45, wantErr: ErrSlotOutsideGrid},
		{name: "after closing", weekday: Monday, hour: 18, minute: 0, wantErr: ErrSlotOutsideGrid},
		{name: "negative hour", weekday: Monday, hour: -1, minute: 0, wantErr: ErrSlotOutsideGrid},
		{name: "off-grid minute", weekday: Monday, hour: 10, minute: 10, wantErr: ErrSlotOutsideGrid},
		{name: "minute sixty", weekday: Monday, hour: 10, minute: 60, wantErr: ErrSlotOutsideGrid},
		{name: "weekend reported before grid", weekday: Sunday, hour: 3, minute: 7, wantErr: ErrWeekendNotBookable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.weekday, tt.hour, tt.minute)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Weekday
	}{
		{time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC), Tuesday},
		{time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC), Wednesday},
		{time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC), Thursday},
		{time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC), Friday},
		{time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC), Saturday},
		{time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), Sunday},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekdayOf(tt.date), tt.date.Format(time.DateOnly))
	}
}

func TestWeekdayIsWeekend(t *testing.T) {
	assert.True(t, Saturday.IsWeekend())
	assert.True(t, Sunday.IsWeekend())
	assert.False(t, Monday.IsWeekend())
	assert.False(t, Friday.IsWeekend())
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	in := time.Date(2024, 10, 8, 14, 32, 9, 123, loc)
	got := DateOnly(in)

	assert.Equal(t, time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestSameSlot(t *testing.T) {
	day := time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC)
	a := &Appointment{Date: day, Hour: 10, Minute: 15}

	assert.True(t, a.SameSlot(day, 10, 15))
	assert.True(t, a.SameSlot(day.Add(9*time.Hour), 10, 15), "intra-day time must not matter")
	assert.False(t, a.SameSlot(day, 10, 30))
	assert.False(t, a.SameSlot(day, 11, 15))
	assert.False(t, a.SameSlot(day.AddDate(0, 0, 1), 10, 15))
}

func TestAppointmentStatusIsValid(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusInProgress, StatusCompleted, StatusMissedByPatient, StatusMissedByOtherReason} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, AppointmentStatus("pending").IsValid(), "wire values are uppercase")
	assert.False(t, AppointmentStatus("CANCELLED").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}
