package reservation

import (
	"fmt"

	"hotelier/internal/domain/shared/money"
)

// CancellationPolicy decides whether a reservation may be cancelled and what
// penalty applies. The fee is a pure function of the quoted total and the
// whole days remaining until arrival.
type CancellationPolicy interface {
	Name() string
	CanCancel(status Status) bool
	Fee(total money.Money, daysUntilArrival int) money.Money
	Describe() string
}

// GuestPolicyConfig parameterizes the tiered penalty. Thresholds are in days
// before arrival; a tier applies when daysUntilArrival > threshold.
type GuestPolicyConfig struct {
	FreeDays       int
	LowDays        int
	HighDays       int
	LowPercent     int
	HighPercent    int
	LastDayPercent int
}

// DefaultGuestPolicyConfig is the standard tier table: free above 7 days,
// 20% above 3, 50% above 1, full price under a day.
func DefaultGuestPolicyConfig() GuestPolicyConfig {
	return GuestPolicyConfig{
		FreeDays:       7,
		LowDays:        3,
		HighDays:       1,
		LowPercent:     20,
		HighPercent:    50,
		LastDayPercent: 100,
	}
}

// Validate rejects tier tables that would charge out of range or whose
// thresholds are not strictly decreasing.
func (c GuestPolicyConfig) Validate() error {
	if c.FreeDays <= c.LowDays || c.LowDays <= c.HighDays || c.HighDays < 0 {
		return fmt.Errorf("cancellation tiers must satisfy free > low > high >= 0, got %d/%d/%d", c.FreeDays, c.LowDays, c.HighDays)
	}
	for _, p := range []int{c.LowPercent, c.HighPercent, c.LastDayPercent} {
		if p < 0 || p > 100 {
			return fmt.Errorf("cancellation percent %d out of range [0,100]", p)
		}
	}
	return nil
}

// GuestPolicy is the guest-initiated cancellation strategy.
type GuestPolicy struct {
	cfg GuestPolicyConfig
}

func NewGuestPolicy(cfg GuestPolicyConfig) GuestPolicy {
	return GuestPolicy{cfg: cfg}
}

func (GuestPolicy) Name() string { return "guest" }

// CanCancel allows guests to back out only before the stay begins.
func (GuestPolicy) CanCancel(status Status) bool {
	return status == StatusNew || status == StatusConfirmed
}

func (p GuestPolicy) Fee(total money.Money, daysUntilArrival int) money.Money {
	return total.Percent(p.tierPercent(daysUntilArrival))
}

func (p GuestPolicy) tierPercent(daysUntilArrival int) int {
	switch {
	case daysUntilArrival > p.cfg.FreeDays:
		return 0
	case daysUntilArrival > p.cfg.LowDays:
		return p.cfg.LowPercent
	case daysUntilArrival > p.cfg.HighDays:
		return p.cfg.HighPercent
	default:
		return p.cfg.LastDayPercent
	}
}

func (p GuestPolicy) Describe() string {
	return fmt.Sprintf(
		"guest cancellation: free above %d days before arrival, %d%% above %d days, %d%% above %d day(s), %d%% after that",
		p.cfg.FreeDays, p.cfg.LowPercent, p.cfg.LowDays, p.cfg.HighPercent, p.cfg.HighDays, p.cfg.LastDayPercent,
	)
}

// DeskPolicy is the desk-initiated strategy: no penalty, and anything that
// has not already ended can be cancelled.
type DeskPolicy struct{}

func (DeskPolicy) Name() string { return "desk" }

func (DeskPolicy) CanCancel(status Status) bool {
	return status != StatusCheckedOut && status != StatusCancelled
}

func (DeskPolicy) Fee(money.Money, int) money.Money {
	return money.Money{}
}

func (DeskPolicy) Describe() string {
	return "desk cancellation: no charge, allowed any time before check-out"
}
