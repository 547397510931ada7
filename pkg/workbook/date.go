package workbook

import "time"

// DateDisplayFormat is the number format applied to the date column.
const DateDisplayFormat = "dd-mmm-yyyy"

// dateLayout is the Go layout matching DateDisplayFormat.
const dateLayout = "02-Jan-2006"

// dateFormats are tried in order; the first successful parse wins, so
// ambiguous inputs like 03/04/2024 resolve as month/day.
var dateFormats = []string{
	"02-Jan-2006",
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
	"02/01/2006",
	"02/01/06",
}

// ParseDate parses a user-supplied date string against the accepted formats.
// Empty and unparseable inputs both return ok=false; callers that need to
// distinguish the two must check for emptiness themselves.
func ParseDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date the way the sheet displays it (dd-mmm-yyyy).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
