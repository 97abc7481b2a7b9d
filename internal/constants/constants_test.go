package constants

import "testing"

func TestNormalizeOrderStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{OrderStatusPendingConfirm, OrderStatusPendingConfirm},
		{OrderStatusCancelled, OrderStatusCancelled},
		{"Chờ xác nhận", OrderStatusPendingConfirm},
		{"Đang giao hàng", OrderStatusShipping},
		{"Giao hàng thành công", OrderStatusDelivered},
		{"Đã giao hàng", OrderStatusDelivered},
		{"Đã hủy", OrderStatusCancelled},
		{"not-a-status", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeOrderStatus(tc.in); got != tc.want {
			t.Fatalf("NormalizeOrderStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrderStatusLabel(t *testing.T) {
	if got := OrderStatusLabel(OrderStatusDelivered); got != "Giao hàng thành công" {
		t.Fatalf("OrderStatusLabel(delivered) = %q", got)
	}
	// Unknown codes fall through unchanged.
	if got := OrderStatusLabel("weird"); got != "weird" {
		t.Fatalf("OrderStatusLabel(weird) = %q", got)
	}
}

func TestNormalizeClaimStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{ClaimStatusPending, ClaimStatusPending},
		{ClaimStatusProcessing, ClaimStatusProcessing},
		{ClaimStatusResolved, ClaimStatusResolved},
		{ClaimStatusRejected, ClaimStatusRejected},
		{"completed", ClaimStatusResolved},
		{"Completed", ClaimStatusResolved},
		{"  resolved  ", ClaimStatusResolved},
		{"done", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeClaimStatus(tc.in); got != tc.want {
			t.Fatalf("NormalizeClaimStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	for status, label := range orderStatusLabels {
		if got := NormalizeOrderStatus(label); got != status {
			t.Fatalf("label %q normalizes to %q, want %q", label, got, status)
		}
	}
}
