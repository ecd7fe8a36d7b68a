package lifecycle

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleKitchen Role = "kitchen"
	RoleAdmin   Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleClient, RoleKitchen, RoleAdmin:
		return Role(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

func (r Role) String() string {
	return string(r)
}

// Permits reports whether role may perform the legal edge from -> to.
// Admins may perform any legal edge. The kitchen moves orders forward up to
// out_for_delivery and may cancel. Clients may only cancel a pending order.
// Permits returns false for edges that CanTransition rejects.
func Permits(role Role, from, to Status) bool {
	if !CanTransition(from, to) {
		return false
	}
	switch role {
	case RoleAdmin:
		return true
	case RoleKitchen:
		return to != StatusDelivered
	case RoleClient:
		return from == StatusPending && to == StatusCancelled
	}
	return false
}
