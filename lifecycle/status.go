// Package lifecycle defines the order status state machine shared by the order
// and analytics services.
package lifecycle

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var ErrUnknownStatus = errors.New("unknown order status")

var statusOrder = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// forward is the single successor of each non-terminal status. Cancellation is
// handled separately in CanTransition.
var forward = map[Status]Status{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusReady,
	StatusReady:          StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// AllowedTransitions lists every legal edge, derived from forward plus cancel.
var AllowedTransitions = buildAllowedTransitions()

var allowedTransitionSet = buildTransitionSet(AllowedTransitions)

func buildAllowedTransitions() map[Status][]Status {
	transitions := make(map[Status][]Status, len(statusOrder))
	for _, status := range statusOrder {
		if status.IsTerminal() {
			transitions[status] = nil
			continue
		}
		transitions[status] = []Status{forward[status], StatusCancelled}
	}
	return transitions
}

func buildTransitionSet(transitions map[Status][]Status) map[Status]map[Status]struct{} {
	set := make(map[Status]map[Status]struct{}, len(transitions))
	for from, tos := range transitions {
		next := make(map[Status]struct{}, len(tos))
		for _, to := range tos {
			next[to] = struct{}{}
		}
		set[from] = next
	}
	return set
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

func ParseStatus(raw string) (Status, error) {
	for _, status := range statusOrder {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the forward successor; false for terminal statuses.
func (s Status) Next() (Status, bool) {
	next, ok := forward[s]
	return next, ok
}

func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether from -> to is an edge of the state machine:
// the immediate successor, or cancellation of a non-terminal order.
func CanTransition(from, to Status) bool {
	next, ok := allowedTransitionSet[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}
