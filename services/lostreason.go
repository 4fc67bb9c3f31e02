package services

import (
	"errors"
	"strings"
)

// Lost-reason categories recorded when a quote/job does not convert.
const (
	LostReasonPriceTooHigh     = "price_too_high"
	LostReasonWentCompetitor   = "went_with_competitor"
	LostReasonTimingChanged    = "timing_changed"
	LostReasonProjectCancelled = "project_cancelled"
	LostReasonNoResponse       = "no_response"
	LostReasonDIY              = "diy"
	LostReasonOther            = "other"
)

// LostReasonOptions lists the selectable categories in display order.
var LostReasonOptions = []string{
	LostReasonPriceTooHigh,
	LostReasonWentCompetitor,
	LostReasonTimingChanged,
	LostReasonProjectCancelled,
	LostReasonNoResponse,
	LostReasonDIY,
	LostReasonOther,
}

var lostReasonLabels = map[string]string{
	LostReasonPriceTooHigh:     "Price too high",
	LostReasonWentCompetitor:   "Went with a competitor",
	LostReasonTimingChanged:    "Timing changed",
	LostReasonProjectCancelled: "Project cancelled",
	LostReasonNoResponse:       "No response",
	LostReasonDIY:              "Decided to DIY",
	LostReasonOther:            "Other",
}

var (
	ErrLostReasonRequired       = errors.New("a reason must be selected")
	ErrLostReasonUnknown        = errors.New("unknown reason")
	ErrLostReasonDetailsMissing = errors.New("details are required when the reason is \"other\"")
)

// LostReasonLabel returns the display label for a reason category.
func LostReasonLabel(reason string) string {
	if label, ok := lostReasonLabels[reason]; ok {
		return label
	}
	return reason
}

// ValidateLostReason checks a lost-reason submission: a known category must
// be selected, and "other" requires non-whitespace details.
func ValidateLostReason(reason, details string) error {
	if reason == "" {
		return ErrLostReasonRequired
	}
	known := false
	for _, r := range LostReasonOptions {
		if r == reason {
			known = true
			break
		}
	}
	if !known {
		return ErrLostReasonUnknown
	}
	if reason == LostReasonOther && strings.TrimSpace(details) == "" {
		return ErrLostReasonDetailsMissing
	}
	return nil
}
