package domain

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPublished, true},
		{StatusPending, StatusPending, false},

		{StatusApproved, StatusApproved, true}, // re-approval is a no-op success
		{StatusApproved, StatusPublished, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},

		{StatusPublished, StatusApproved, false},
		{StatusPublished, StatusPublished, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusPublished, StatusRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusApproved} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusPublished} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeBriefs, ModeAnalysis, ModeConnection} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if Mode("freestyle").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

func TestInvalidTransitionErrorMatchesValidation(t *testing.T) {
	err := &InvalidTransitionError{From: StatusRejected, To: StatusApproved}
	if !err.Is(ErrValidation) {
		t.Error("transition errors should match ErrValidation")
	}
	if err.StatusCode() != 400 {
		t.Errorf("StatusCode() = %d, want 400", err.StatusCode())
	}
}
