package types

import "time"

// ReportingWindow is the period in which authorities are expected to review
// and update their schemes. Windows open on the first day of each quarter
// and last one month.
type ReportingWindow struct {
	Window DateRange
}

// ReportingWindowContaining returns the reporting window for the quarter the
// given instant falls into.
func ReportingWindowContaining(t time.Time) ReportingWindow {
	quarter := (int(t.Month()) - 1) / 3
	start := time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return ReportingWindow{Window: DateRange{DateFrom: start, DateTo: &end}}
}

// Start returns the cut-off against which review staleness is judged.
func (w ReportingWindow) Start() time.Time {
	return w.Window.DateFrom
}
