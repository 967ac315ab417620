// Package booking holds the pure domain rules of the reservation
// lifecycle: the status state machine, confirmation code
// generation and the policy checks applied before any write.  It
// has no database or transport dependencies so the rules can be
// exercised directly in tests.
package booking

import "errors"

// Status is the lifecycle state of a booking.  It is a closed set;
// every write validates the requested transition against the
// transition table below instead of comparing raw strings.
type Status string

const (
    StatusPending   Status = "PENDING"
    StatusConfirmed Status = "CONFIRMED"
    StatusCompleted Status = "COMPLETED"
    StatusNoShow    Status = "NO_SHOW"
    StatusCancelled Status = "CANCELLED"
)

// ErrBadTransition is returned when a requested status change is
// not an edge of the state machine.
var ErrBadTransition = errors.New("status transition not allowed")

// transitions enumerates every legal edge.  COMPLETED, NO_SHOW and
// CANCELLED are terminal: no edge leaves them.
var transitions = map[Status][]Status{
    StatusPending:   {StatusConfirmed, StatusCancelled},
    StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
        return true
    }
    return false
}

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
    switch s {
    case StatusCompleted, StatusNoShow, StatusCancelled:
        return true
    }
    return false
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Status) bool {
    for _, next := range transitions[from] {
        if next == to {
            return true
        }
    }
    return false
}

// Transition validates from -> to and returns ErrBadTransition when
// the edge does not exist.
func Transition(from, to Status) error {
    if !CanTransition(from, to) {
        return ErrBadTransition
    }
    return nil
}

// ActiveStatuses returns the non-terminal statuses.  These are the
// states that occupy capacity: a PENDING or CONFIRMED booking keeps
// its (table, window, date) slot, a terminal one frees it.
func ActiveStatuses() []Status {
    return []Status{StatusPending, StatusConfirmed}
}

// InitialStatus returns the state a freshly created booking starts
// in given whether the merchant's policy auto-confirms.
func InitialStatus(autoConfirm bool) Status {
    if autoConfirm {
        return StatusConfirmed
    }
    return StatusPending
}
