package guests

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/guest"
	"hotelier/internal/domain/shared/fault"
)

const registerGuestKey = "guest.register"

type RegisterGuestCommand struct {
	FirstName string
	LastName  string
	Email     string
}

func (c RegisterGuestCommand) Key() string { return registerGuestKey }

type RegisterGuestResult struct {
	GuestID  string `json:"guest_id"`
	Existing bool   `json:"existing"`
}

// RegisterGuestHandler creates a guest profile. Registration dedupes by
// email address: a repeat registration returns the existing profile
// instead of creating a duplicate.
type RegisterGuestHandler struct {
	UoWFactory uow.UoWFactory
	Clock      func() time.Time
}

func (h *RegisterGuestHandler) Handle(ctx context.Context, cmd RegisterGuestCommand) (*RegisterGuestResult, error) {
	now := nowFrom(h.Clock)
	var result *RegisterGuestResult
	err := uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		email := strings.ToLower(strings.TrimSpace(cmd.Email))
		existing, err := unit.Guests().ByEmail(ctx, email)
		switch {
		case err == nil:
			result = &RegisterGuestResult{GuestID: string(existing.ID), Existing: true}
			return nil
		case !errors.Is(err, fault.ErrNotFound):
			return err
		}
		g, err := guest.New(cmd.FirstName, cmd.LastName, email, now)
		if err != nil {
			return err
		}
		if err := unit.Guests().Save(ctx, g); err != nil {
			return err
		}
		result = &RegisterGuestResult{GuestID: string(g.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func nowFrom(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

var _ commands.Handler[RegisterGuestCommand, *RegisterGuestResult] = (*RegisterGuestHandler)(nil)
