package appointment

// Clinic operating grid: weekdays only, hours 08:00 through 17:xx, bookings
// on the quarter hour.
const (
	FirstBookableHour = 8
	LastBookableHour  = 17
)

var bookableMinutes = map[int]bool{0: true, 15: true, 30: true, 45: true}

// ValidateSlot checks a candidate slot against the clinic operating grid.
// It is pure; nothing is read from the store.
func ValidateSlot(weekday Weekday, hour, minute int) error {
	if weekday.IsWeekend() {
		return ErrWeekendNotBookable
	}
	if hour < FirstBookableHour || hour > LastBookableHour {
		return ErrSlotOutsideGrid
	}
	if !bookableMinutes[minute] {
		return ErrSlotOutsideGrid
	}
	return nil
}
