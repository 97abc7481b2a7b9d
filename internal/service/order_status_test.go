package service

import (
	"testing"

	"github.com/huong-next/internal/constants"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.OrderStatusPendingConfirm, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPendingConfirm, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPendingConfirm, constants.OrderStatusDelivered, false},
		{constants.OrderStatusPendingPayment, constants.OrderStatusPaid, true},
		{constants.OrderStatusPendingPayment, constants.OrderStatusShipping, false},
		{constants.OrderStatusPaid, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPaid, constants.OrderStatusShipping, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipping, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipping, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusShipping, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPendingConfirm, false},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
		{"unknown", constants.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
