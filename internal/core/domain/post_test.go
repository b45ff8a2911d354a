package domain

import "testing"

func TestPostStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to PostStatus
		want     bool
	}{
		{StatusAvailable, StatusRequested, true},
		{StatusRequested, StatusPicked, true},
		{StatusPicked, StatusDelivered, true},

		// no skipping
		{StatusAvailable, StatusPicked, false},
		{StatusAvailable, StatusDelivered, false},
		{StatusRequested, StatusDelivered, false},

		// no regression
		{StatusRequested, StatusAvailable, false},
		{StatusPicked, StatusRequested, false},
		{StatusDelivered, StatusPicked, false},

		// delivered is terminal
		{StatusDelivered, StatusAvailable, false},
		{StatusDelivered, StatusRequested, false},
		{StatusDelivered, StatusDelivered, false},

		// no self loops
		{StatusAvailable, StatusAvailable, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParsePostStatus(t *testing.T) {
	for _, valid := range []string{"available", "requested", "picked", "delivered"} {
		if _, ok := ParsePostStatus(valid); !ok {
			t.Errorf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"", "Available", "cancelled", "done"} {
		if _, ok := ParsePostStatus(invalid); ok {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"donor", "receiver", "volunteer", "admin"} {
		if _, ok := ParseRole(valid); !ok {
			t.Errorf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"", "Donor", "client", "superadmin"} {
		if _, ok := ParseRole(invalid); ok {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}
