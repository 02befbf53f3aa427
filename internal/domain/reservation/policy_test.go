package reservation

import (
	"testing"

	"hotelier/internal/domain/shared/money"
)

func TestGuestPolicyTiers(t *testing.T) {
	policy := NewGuestPolicy(DefaultGuestPolicyConfig())
	total := money.Must(80000)

	cases := []struct {
		name             string
		daysUntilArrival int
		wantCents        int64
	}{
		{"ten days out is free", 10, 0},
		{"eight days out is free", 8, 0},
		{"exactly seven days charges low tier", 7, 16000},
		{"five days out charges low tier", 5, 16000},
		{"exactly three days charges high tier", 3, 40000},
		{"two days out charges high tier", 2, 40000},
		{"exactly one day charges full price", 1, 80000},
		{"same day charges full price", 0, 80000},
		{"after arrival charges full price", -1, 80000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Fee(total, tc.daysUntilArrival).Cents; got != tc.wantCents {
				t.Errorf("Fee(%d days) = %d, want %d", tc.daysUntilArrival, got, tc.wantCents)
			}
		})
	}
}

func TestGuestPolicyIsDeterministic(t *testing.T) {
	policy := NewGuestPolicy(DefaultGuestPolicyConfig())
	total := money.Must(123456)
	first := policy.Fee(total, 5)
	for i := 0; i < 10; i++ {
		if got := policy.Fee(total, 5); got != first {
			t.Fatalf("Fee changed between calls: %v then %v", first, got)
		}
	}
}

func TestGuestPolicyGatesByStatus(t *testing.T) {
	policy := NewGuestPolicy(DefaultGuestPolicyConfig())
	allowed := map[Status]bool{
		StatusNew:        true,
		StatusConfirmed:  true,
		StatusCheckedIn:  false,
		StatusCheckedOut: false,
		StatusCancelled:  false,
	}
	for status, want := range allowed {
		if got := policy.CanCancel(status); got != want {
			t.Errorf("CanCancel(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestDeskPolicyNeverCharges(t *testing.T) {
	policy := DeskPolicy{}
	for _, days := range []int{30, 7, 1, 0, -3} {
		if fee := policy.Fee(money.Must(999999), days); !fee.IsZero() {
			t.Errorf("desk fee at %d days = %d, want 0", days, fee.Cents)
		}
	}
	if !policy.CanCancel(StatusCheckedIn) {
		t.Error("desk should be able to cancel an in-house stay")
	}
	if policy.CanCancel(StatusCheckedOut) {
		t.Error("desk cancelled a completed stay")
	}
	if policy.CanCancel(StatusCancelled) {
		t.Error("desk cancelled twice")
	}
}

func TestCustomTierTable(t *testing.T) {
	policy := NewGuestPolicy(GuestPolicyConfig{
		FreeDays: 14, LowDays: 7, HighDays: 2,
		LowPercent: 10, HighPercent: 40, LastDayPercent: 90,
	})
	total := money.Must(100000)
	if got := policy.Fee(total, 15).Cents; got != 0 {
		t.Errorf("15 days = %d, want 0", got)
	}
	if got := policy.Fee(total, 10).Cents; got != 10000 {
		t.Errorf("10 days = %d, want 10000", got)
	}
	if got := policy.Fee(total, 5).Cents; got != 40000 {
		t.Errorf("5 days = %d, want 40000", got)
	}
	if got := policy.Fee(total, 1).Cents; got != 90000 {
		t.Errorf("1 day = %d, want 90000", got)
	}
}

func TestGuestPolicyConfigValidate(t *testing.T) {
	if err := DefaultGuestPolicyConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	bad := DefaultGuestPolicyConfig()
	bad.LowDays = bad.FreeDays
	if err := bad.Validate(); err == nil {
		t.Error("non-decreasing thresholds accepted")
	}
	bad = DefaultGuestPolicyConfig()
	bad.HighPercent = 120
	if err := bad.Validate(); err == nil {
		t.Error("percent above 100 accepted")
	}
}
