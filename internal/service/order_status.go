package service

import "github.com/huong-next/internal/constants"

// orderTransitions is the allowed status graph. Admin updates must follow
// it; the delivered -> cancelled edge exists so a mis-marked delivery can
// be rolled back (warranties are retracted by the hook).
var orderTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingConfirm: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusPaid:      true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusShipping:  true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipping:  true,
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipping: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusCancelled: {},
}

// customerCancellable are the states a customer may cancel from. Once the
// order ships only an admin can intervene.
var customerCancellable = map[string]bool{
	constants.OrderStatusPendingConfirm: true,
	constants.OrderStatusPendingPayment: true,
	constants.OrderStatusPaid:           true,
	constants.OrderStatusConfirmed:      true,
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to string) bool {
	targets, ok := orderTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}
