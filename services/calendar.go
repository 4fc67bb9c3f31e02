package services

import "time"

// CalendarEntry is one job rendered on the schedule calendar.
type CalendarEntry struct {
	JobID       string `json:"jobId"`
	JobNumber   string `json:"jobNumber"`
	ClientName  string `json:"clientName"`
	Status      string `json:"status"`
	StatusColor string `json:"statusColor"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// CalendarJob is the subset of a job the calendar projection reads.
type CalendarJob struct {
	ID         string
	JobNumber  string
	ClientName string
	Status     string
	Start      time.Time
	End        time.Time
}

// BuildCalendar projects scheduled jobs into calendar entries overlapping
// the [rangeStart, rangeEnd] window. Jobs without a scheduled start are
// skipped; a missing end date collapses to a single-day entry.
func BuildCalendar(jobs []CalendarJob, rangeStart, rangeEnd time.Time) []CalendarEntry {
	entries := []CalendarEntry{}
	winStart := DateOnly(rangeStart)
	winEnd := DateOnly(rangeEnd)

	for _, job := range jobs {
		if job.Start.IsZero() {
			continue
		}
		start := DateOnly(job.Start)
		end := start
		if !job.End.IsZero() {
			end = DateOnly(job.End)
		}
		if end.Before(start) {
			end = start
		}
		if end.Before(winStart) || start.After(winEnd) {
			continue
		}
		entries = append(entries, CalendarEntry{
			JobID:       job.ID,
			JobNumber:   job.JobNumber,
			ClientName:  job.ClientName,
			Status:      job.Status,
			StatusColor: JobStatusColor(job.Status),
			Start:       start.Format("2006-01-02"),
			End:         end.Format("2006-01-02"),
		})
	}
	return entries
}
