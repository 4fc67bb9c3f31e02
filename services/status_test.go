package services

import "testing"

// The admin status picker is deliberately a flat enumeration: every status
// is offered regardless of the job's current status. This test pins that
// behavior so introducing a transition graph later is a visible change.
func TestNextStatusOptions_Unfiltered(t *testing.T) {
	currents := append([]string{"", "unknown_status"}, JobStatusOptions...)

	for _, current := range currents {
		name := current
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			got := NextStatusOptions(current)
			if len(got) != len(JobStatusOptions) {
				t.Fatalf("expected %d options, got %d", len(JobStatusOptions), len(got))
			}
			for i, s := range JobStatusOptions {
				if got[i] != s {
					t.Errorf("option[%d] = %q, want %q", i, got[i], s)
				}
			}
		})
	}
}

func TestNextStatusOptions_ReturnsCopy(t *testing.T) {
	got := NextStatusOptions(StatusInProgress)
	got[0] = "mutated"
	if JobStatusOptions[0] == "mutated" {
		t.Error("NextStatusOptions must not expose the shared backing slice")
	}
}

func TestIsValidJobStatus(t *testing.T) {
	for _, s := range JobStatusOptions {
		if !IsValidJobStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "cancelled", "DEPOSIT_PAID"} {
		if IsValidJobStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestIsValidAreaStatus(t *testing.T) {
	for _, s := range AreaStatusOptions {
		if !IsValidAreaStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if IsValidAreaStatus("done") {
		t.Error("expected \"done\" to be invalid")
	}
}

func TestStatusLabelsAndColors(t *testing.T) {
	if got := JobStatusLabel(StatusInProgress); got != "In Progress" {
		t.Errorf("JobStatusLabel = %q", got)
	}
	if got := JobStatusLabel("mystery"); got != "mystery" {
		t.Errorf("expected raw fallback, got %q", got)
	}
	if got := JobStatusColor("mystery"); got != "default" {
		t.Errorf("expected default color, got %q", got)
	}
	if got := AreaStatusLabel(AreaStatusTouchUps); got != "Touch-ups" {
		t.Errorf("AreaStatusLabel = %q", got)
	}

	for _, opt := range StatusOptionsFor(StatusInProgress) {
		if opt.Label == "" || opt.Color == "" {
			t.Errorf("option %q missing presentation metadata: %+v", opt.Value, opt)
		}
	}
}
