package catalog

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for all date values.
const dateLayout = "2006-01-02"

// buildDateRange renders a price validity interval as a daterange literal.
// An empty start defaults to today; an empty end leaves the range
// open-ended. The store canonicalizes the inclusive literal to half-open
// bounds, so a range inserted as [start,end] reads back as [start,end+1day).
func buildDateRange(start, end string, today time.Time) (string, error) {
	startDate := today.Format(dateLayout)
	if start != "" {
		parsed, err := time.Parse(dateLayout, start)
		if err != nil {
			return "", fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", start)
		}
		startDate = parsed.Format(dateLayout)
	}

	endDate := ""
	if end != "" {
		parsed, err := time.Parse(dateLayout, end)
		if err != nil {
			return "", fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", end)
		}
		endDate = parsed.Format(dateLayout)
	}

	return "[" + startDate + "," + endDate + "]", nil
}
