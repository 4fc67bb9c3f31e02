// Package services provides the domain logic for job tracking: progress
// projection, schedule validation, status tables, document generation and
// related pure helpers.
package services

// Job statuses as stored on the jobs collection and accepted by the
// status-update endpoints.
const (
	StatusDepositPaid        = "deposit_paid"
	StatusSelectionsComplete = "selections_complete"
	StatusScheduled          = "scheduled"
	StatusInProgress         = "in_progress"
	StatusPaused             = "paused"
	StatusCompleted          = "completed"
	StatusOnHold             = "on_hold"
)

// JobStatusOptions is the full set of admin-selectable job statuses, in
// display order.
var JobStatusOptions = []string{
	StatusDepositPaid,
	StatusSelectionsComplete,
	StatusScheduled,
	StatusInProgress,
	StatusPaused,
	StatusCompleted,
	StatusOnHold,
}

// Per-item work statuses tracked in a job's area_progress map.
const (
	AreaStatusNotStarted = "not_started"
	AreaStatusPrepped    = "prepped"
	AreaStatusInProgress = "in_progress"
	AreaStatusTouchUps   = "touch_ups"
	AreaStatusCompleted  = "completed"
)

// AreaStatusOptions lists the per-item statuses in workflow order.
var AreaStatusOptions = []string{
	AreaStatusNotStarted,
	AreaStatusPrepped,
	AreaStatusInProgress,
	AreaStatusTouchUps,
	AreaStatusCompleted,
}

var jobStatusLabels = map[string]string{
	StatusDepositPaid:        "Deposit Paid",
	StatusSelectionsComplete: "Selections Complete",
	StatusScheduled:          "Scheduled",
	StatusInProgress:         "In Progress",
	StatusPaused:             "Paused",
	StatusCompleted:          "Completed",
	StatusOnHold:             "On Hold",
}

var jobStatusColors = map[string]string{
	StatusDepositPaid:        "gold",
	StatusSelectionsComplete: "purple",
	StatusScheduled:          "blue",
	StatusInProgress:         "processing",
	StatusPaused:             "orange",
	StatusCompleted:          "green",
	StatusOnHold:             "red",
}

var areaStatusLabels = map[string]string{
	AreaStatusNotStarted: "Not Started",
	AreaStatusPrepped:    "Prepped",
	AreaStatusInProgress: "In Progress",
	AreaStatusTouchUps:   "Touch-ups",
	AreaStatusCompleted:  "Completed",
}

// JobStatusLabel returns the display label for a job status, falling back
// to the raw value for unknown statuses.
func JobStatusLabel(status string) string {
	if label, ok := jobStatusLabels[status]; ok {
		return label
	}
	return status
}

// JobStatusColor returns the badge color for a job status.
func JobStatusColor(status string) string {
	if color, ok := jobStatusColors[status]; ok {
		return color
	}
	return "default"
}

// AreaStatusLabel returns the display label for a per-item status.
func AreaStatusLabel(status string) string {
	if label, ok := areaStatusLabels[status]; ok {
		return label
	}
	return status
}

// IsValidJobStatus reports whether status is a member of the job status
// enumeration.
func IsValidJobStatus(status string) bool {
	for _, s := range JobStatusOptions {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidAreaStatus reports whether status is a member of the per-item
// status enumeration.
func IsValidAreaStatus(status string) bool {
	for _, s := range AreaStatusOptions {
		if s == status {
			return true
		}
	}
	return false
}

// NextStatusOptions returns the statuses an admin may move a job to from
// the given current status. The transition set is intentionally the full
// flat enumeration regardless of current status; ordering is audited via
// status events rather than enforced here.
func NextStatusOptions(currentStatus string) []string {
	options := make([]string, len(JobStatusOptions))
	copy(options, JobStatusOptions)
	return options
}

// StatusOption pairs a status value with its presentation metadata for
// API consumers.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusOptionsFor returns the statuses reachable from current with labels
// and colors attached, ready for the admin status picker.
func StatusOptionsFor(current string) []StatusOption {
	statuses := NextStatusOptions(current)
	options := make([]StatusOption, 0, len(statuses))
	for _, s := range statuses {
		options = append(options, StatusOption{
			Value: s,
			Label: JobStatusLabel(s),
			Color: JobStatusColor(s),
		})
	}
	return options
}
