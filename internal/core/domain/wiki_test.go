package domain

import "testing"

func TestSubmissionStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{SubmissionPending, SubmissionApproved, true},
		{SubmissionPending, SubmissionDenied, true},
		{SubmissionApproved, SubmissionDenied, false},
		{SubmissionApproved, SubmissionPending, false},
		{SubmissionDenied, SubmissionApproved, false},
		{SubmissionDenied, SubmissionPending, false},
		{SubmissionPending, SubmissionPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseAnnouncementCategory(t *testing.T) {
	for _, valid := range []string{"NEWS", "EVENT", "LORE"} {
		if _, ok := ParseAnnouncementCategory(valid); !ok {
			t.Errorf("ParseAnnouncementCategory(%q) rejected a valid category", valid)
		}
	}
	for _, invalid := range []string{"", "news", "GOSSIP"} {
		if _, ok := ParseAnnouncementCategory(invalid); ok {
			t.Errorf("ParseAnnouncementCategory(%q) accepted an invalid category", invalid)
		}
	}
}
