package services

import "time"

// ISODateLayout is the fixed-width calendar-day format used on every date
// field. Zero padding is what makes lexicographic comparison of two dates
// equivalent to chronological comparison.
const ISODateLayout = "2006-01-02"

func isValidISODate(s string) bool {
	_, err := time.Parse(ISODateLayout, s)
	return err == nil
}

// DatesInRange enumerates every calendar day from start through end
// inclusive, ascending, one day at a time. An inverted range yields an
// empty slice.
func DatesInRange(start, end string) ([]string, error) {
	startDay, err := time.Parse(ISODateLayout, start)
	if err != nil {
		return nil, err
	}
	endDay, err := time.Parse(ISODateLayout, end)
	if err != nil {
		return nil, err
	}

	dates := []string{}
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(ISODateLayout))
	}
	return dates, nil
}
