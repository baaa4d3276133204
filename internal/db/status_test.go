package db

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatalf("expected pending -> confirmed allowed")
	}
	if !CanTransition(StatusConfirmed, StatusActive) {
		t.Fatalf("expected confirmed -> active allowed")
	}
	if !CanTransition(StatusActive, StatusCompleted) {
		t.Fatalf("expected active -> completed allowed")
	}
	if CanTransition(StatusPending, StatusActive) {
		t.Fatalf("expected pending -> active not allowed")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatalf("expected pending -> completed not allowed")
	}
}

func TestCancellableStates(t *testing.T) {
	for _, from := range []ReservationStatus{StatusPending, StatusConfirmed, StatusActive} {
		if !CanTransition(from, StatusCancelled) {
			t.Fatalf("expected %s -> cancelled allowed", from)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, from := range []ReservationStatus{StatusCompleted, StatusCancelled} {
		for _, to := range []ReservationStatus{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled} {
			if CanTransition(from, to) {
				t.Fatalf("expected no transition out of %s, got %s -> %s allowed", from, from, to)
			}
		}
	}
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled} {
		if !ValidReservationStatus(s) {
			t.Fatalf("expected %s to be a valid status", s)
		}
	}
	if ValidReservationStatus("finished") {
		t.Fatalf("expected unknown status to be invalid")
	}
}
