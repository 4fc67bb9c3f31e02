package services

import "time"

// JobStats summarizes the job book for the dashboard.
type JobStats struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"byStatus"`
	Active          int            `json:"active"`
	ScheduledAhead  int            `json:"scheduledAhead"`
	CompletedLast30 int            `json:"completedLast30"`
	AwaitingDeposit int            `json:"awaitingDeposit"`
}

// StatsJob is the subset of a job the stats aggregation reads.
type StatsJob struct {
	Status      string
	DepositPaid bool
	Start       time.Time
	Updated     time.Time
}

// ComputeJobStats aggregates jobs into dashboard counters as of now.
// "Active" covers scheduled, in-progress and paused work; "ScheduledAhead"
// counts jobs whose scheduled start is today or later.
func ComputeJobStats(jobs []StatsJob, now time.Time) JobStats {
	stats := JobStats{ByStatus: map[string]int{}}
	today := DateOnly(now)
	cutoff := today.AddDate(0, 0, -30)

	for _, job := range jobs {
		stats.Total++
		stats.ByStatus[job.Status]++

		switch job.Status {
		case StatusScheduled, StatusInProgress, StatusPaused:
			stats.Active++
		case StatusCompleted:
			if !job.Updated.IsZero() && !DateOnly(job.Updated).Before(cutoff) {
				stats.CompletedLast30++
			}
		}

		if !job.Start.IsZero() && !DateOnly(job.Start).Before(today) {
			stats.ScheduledAhead++
		}
		if !job.DepositPaid {
			stats.AwaitingDeposit++
		}
	}
	return stats
}
