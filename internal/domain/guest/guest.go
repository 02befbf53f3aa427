package guest

import (
	"context"
	"strings"
	"time"

	"hotelier/internal/domain/shared/fault"
)

var (
	ErrInvalidEmail  = fault.Validationf("guest: email must contain @")
	ErrNameRequired  = fault.Validationf("guest: first and last name are required")
	ErrGuestNotFound = fault.NotFoundf("guest")
)

type GuestID string

type Guest struct {
	ID        GuestID
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id GuestID) (*Guest, error)
	ByEmail(ctx context.Context, email string) (*Guest, error)
	Save(ctx context.Context, guest *Guest) error
}

func New(firstName, lastName, email string, now time.Time) (*Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	ts := now.UTC()
	return &Guest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.TrimSpace(email),
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// ChangeEmail updates the contact address; identity is immutable.
func (g *Guest) ChangeEmail(email string, now time.Time) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	g.Email = strings.TrimSpace(email)
	g.UpdatedAt = now.UTC()
	return nil
}

func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
