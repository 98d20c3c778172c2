package enums

import "testing"

func TestParseDeliveryOption(t *testing.T) {
	cases := []struct {
		in   string
		want DeliveryOption
		ok   bool
	}{
		{"standard", DeliveryStandard, true},
		{" Express ", DeliveryExpress, true},
		{"overnight", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDeliveryOption(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseDeliveryOption(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	if !OrderStatusPending.CanTransitionTo(OrderStatusProcessing) {
		t.Fatal("pending should move to processing")
	}
	if OrderStatusShipped.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("shipped orders cannot be cancelled")
	}
	if OrderStatusDelivered.CanTransitionTo(OrderStatusPending) {
		t.Fatal("delivered is terminal")
	}
	if OrderStatus("unknown").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}
