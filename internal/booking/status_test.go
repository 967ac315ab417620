package booking

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
    all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled}
    for _, from := range all {
        if !from.Terminal() {
            continue
        }
        for _, to := range all {
            assert.Falsef(t, CanTransition(from, to), "terminal %s must not transition to %s", from, to)
        }
    }
}

func TestAllowedTransitions(t *testing.T) {
    assert.True(t, CanTransition(StatusPending, StatusConfirmed))
    assert.True(t, CanTransition(StatusPending, StatusCancelled))
    assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
    assert.True(t, CanTransition(StatusConfirmed, StatusNoShow))
    assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
}

func TestDisallowedTransitions(t *testing.T) {
    assert.False(t, CanTransition(StatusPending, StatusCompleted), "pending cannot complete without confirmation")
    assert.False(t, CanTransition(StatusPending, StatusNoShow))
    assert.False(t, CanTransition(StatusConfirmed, StatusPending), "no path back to pending")
    assert.False(t, CanTransition(StatusCancelled, StatusCancelled), "cancelling a cancelled booking is a conflict")
    assert.ErrorIs(t, Transition(StatusCancelled, StatusConfirmed), ErrBadTransition)
}

func TestStatusValid(t *testing.T) {
    assert.True(t, Status("PENDING").Valid())
    assert.True(t, Status("NO_SHOW").Valid())
    assert.False(t, Status("pending").Valid())
    assert.False(t, Status("DELETED").Valid())
}

func TestInitialStatus(t *testing.T) {
    assert.Equal(t, StatusConfirmed, InitialStatus(true))
    assert.Equal(t, StatusPending, InitialStatus(false))
}

func TestActiveStatusesAreNonTerminal(t *testing.T) {
    for _, s := range ActiveStatuses() {
        assert.False(t, s.Terminal())
    }
    assert.Len(t, ActiveStatuses(), 2)
}
