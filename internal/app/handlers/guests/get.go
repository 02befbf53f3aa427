package guests

import (
	"context"
	"time"

	"hotelier/internal/app/queries"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/guest"
)

const getGuestKey = "guest.get"

type GetGuestQuery struct {
	GuestID string
}

func (q GetGuestQuery) Key() string { return getGuestKey }

type GuestView struct {
	GuestID   string    `json:"guest_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type GetGuestHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetGuestHandler) Handle(ctx context.Context, q GetGuestQuery) (*GuestView, error) {
	var view *GuestView
	err := uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		g, err := unit.Guests().ByID(ctx, guest.GuestID(q.GuestID))
		if err != nil {
			return err
		}
		view = &GuestView{
			GuestID:   string(g.ID),
			FirstName: g.FirstName,
			LastName:  g.LastName,
			Email:     g.Email,
			CreatedAt: g.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

var _ queries.Handler[GetGuestQuery, *GuestView] = (*GetGuestHandler)(nil)
