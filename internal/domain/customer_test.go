package domain

import "testing"

func TestCustomerStatusTransitions(t *testing.T) {
	cases := []struct {
		from    CustomerStatus
		to      CustomerStatus
		allowed bool
	}{
		{StatusDocumentsSubmitted, StatusKYCInProgress, true},
		{StatusDocumentsSubmitted, StatusKYCCompleted, false},
		{StatusDocumentsSubmitted, StatusApproved, false},
		{StatusKYCInProgress, StatusKYCCompleted, true},
		{StatusKYCInProgress, StatusApproved, false},
		{StatusKYCCompleted, StatusApproved, true},
		{StatusKYCCompleted, StatusRejected, true},
		{StatusKYCCompleted, StatusDocumentsSubmitted, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusKYCInProgress, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCustomerStatusIsTerminal(t *testing.T) {
	for _, status := range []CustomerStatus{StatusApproved, StatusRejected} {
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}
	for _, status := range []CustomerStatus{StatusDocumentsSubmitted, StatusKYCInProgress, StatusKYCCompleted} {
		if status.IsTerminal() {
			t.Errorf("expected %s not to be terminal", status)
		}
	}
}

func TestParseCustomerStatusRejectsUnknown(t *testing.T) {
	if _, ok := ParseCustomerStatus("ON_HOLD"); ok {
		t.Fatal("expected ON_HOLD to be rejected")
	}
	if _, ok := ParseCustomerStatus("approved"); ok {
		t.Fatal("expected lowercase status to be rejected")
	}
}
