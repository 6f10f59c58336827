package models

import "fmt"

// OrderStatus is the lifecycle state of an order.
//
// The lifecycle is:
//
//	NEW ──> IN_PROGRESS ──> EN_ROUTE ──> WORKING ──> DONE
//	 │           │              (EN_ROUTE is skippable)
//	 └──> CANCELLED <──┘
//
// DONE and CANCELLED are terminal. The prototype's Indonesian vocabulary
// (DIPROSES, DALAM_PERJALANAN, SEDANG_DIKERJAKAN) maps to IN_PROGRESS,
// EN_ROUTE and WORKING respectively.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusEnRoute    OrderStatus = "EN_ROUTE"
	OrderStatusWorking    OrderStatus = "WORKING"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions maps each status to its permitted successors.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:        {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusEnRoute, OrderStatusWorking, OrderStatusCancelled},
	OrderStatusEnRoute:    {OrderStatusWorking},
	OrderStatusWorking:    {OrderStatusDone},
	OrderStatusDone:       {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus converts a raw string into an OrderStatus, rejecting
// anything outside the canonical vocabulary.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// Valid reports whether the status is one of the canonical values.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDone || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the lifecycle graph permits moving from
// the current status to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// RequiresAssignedMitra reports whether a status may only be entered by the
// mitra assigned to the order.
func (s OrderStatus) RequiresAssignedMitra() bool {
	switch s {
	case OrderStatusEnRoute, OrderStatusWorking, OrderStatusDone:
		return true
	}
	return false
}

// AdvanceTarget reports whether a status may be entered through the advance
// operation. IN_PROGRESS is only entered by claiming or assignment, and
// CANCELLED only by cancellation, so neither is a valid advance target.
func (s OrderStatus) AdvanceTarget() bool {
	switch s {
	case OrderStatusEnRoute, OrderStatusWorking, OrderStatusDone:
		return true
	}
	return false
}
