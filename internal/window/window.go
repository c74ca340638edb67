package window

import "time"

// ISO8601Millis is the timestamp layout the orders API expects.
const ISO8601Millis = "2006-01-02T15:04:05.000Z"

// Window is the UTC date range used to select qualifying orders.
type Window struct {
	Start time.Time
	End   time.Time
}

// Compute returns the delivery window for a trigger firing at now: the
// calendar date seven days earlier, from 00:00:00.000 to 23:59:00.000 UTC.
// Seven days are subtracted as calendar days so month and year rollovers
// follow normal date arithmetic. The end stops at 23:59:00, not end of
// day; this matches the window the trigger was originally configured
// with and is kept for compatibility.
func Compute(now time.Time) Window {
	d := now.UTC().AddDate(0, 0, -7)
	return Window{
		Start: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, time.UTC),
	}
}

func (w Window) StartString() string { return w.Start.Format(ISO8601Millis) }
func (w Window) EndString() string   { return w.End.Format(ISO8601Millis) }
