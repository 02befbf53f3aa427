package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	domainguest "hotelier/internal/domain/guest"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/fault"
)

// RoomRepository keeps the room inventory in memory.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainroom.Number]*domainroom.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainroom.Number]*domainroom.Room)}
}

// ByNumber returns a copy of the room or room.ErrRoomNotFound.
func (r *RoomRepository) ByNumber(ctx context.Context, number domainroom.Number) (*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.items[number]
	if !ok {
		return nil, domainroom.ErrRoomNotFound
	}
	clone := *rm
	return &clone, nil
}

// All returns the inventory sorted by room number.
func (r *RoomRepository) All(ctx context.Context) ([]*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domainroom.Room, 0, len(r.items))
	for _, rm := range r.items {
		clone := *rm
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// Save stores the room state, bumping its version.
func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *rm
	clone.Version++
	r.items[clone.Number] = &clone
	rm.Version = clone.Version
	return nil
}

// SetOccupancy flips the physical room state without touching the rate.
func (r *RoomRepository) SetOccupancy(ctx context.Context, number domainroom.Number, state domainroom.Occupancy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.items[number]
	if !ok {
		return domainroom.ErrRoomNotFound
	}
	rm.Occupancy = state
	rm.Version++
	return nil
}

var _ domainroom.Repository = (*RoomRepository)(nil)

// GuestRepository stores guest profiles, indexed by id and by email.
type GuestRepository struct {
	mu      sync.RWMutex
	items   map[domainguest.GuestID]*domainguest.Guest
	byEmail map[string]domainguest.GuestID
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{
		items:   make(map[domainguest.GuestID]*domainguest.Guest),
		byEmail: make(map[string]domainguest.GuestID),
	}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.GuestID) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.items[id]
	if !ok {
		return nil, domainguest.ErrGuestNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *GuestRepository) ByEmail(ctx context.Context, email string) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domainguest.ErrGuestNotFound
	}
	clone := *r.items[id]
	return &clone, nil
}

// Save assigns an identity when the guest has none and refreshes the email index.
func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.ID == "" {
		g.ID = domainguest.GuestID(uuid.NewString())
	}
	if prev, ok := r.items[g.ID]; ok {
		delete(r.byEmail, normalizeEmail(prev.Email))
	}
	clone := *g
	r.items[clone.ID] = &clone
	r.byEmail[normalizeEmail(clone.Email)] = clone.ID
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ domainguest.Repository = (*GuestRepository)(nil)

// ReservationRepository stores reservations in memory with optimistic
// version checks mirroring the document store behavior.
type ReservationRepository struct {
	mu     sync.RWMutex
	items  map[domainreservation.ReservationID]*domainreservation.Reservation
	byRoom map[domainroom.Number][]domainreservation.ReservationID
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items:  make(map[domainreservation.ReservationID]*domainreservation.Reservation),
		byRoom: make(map[domainroom.Number][]domainreservation.ReservationID),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrReservationNotFound
	}
	return cloneReservation(res), nil
}

// ForRoom returns the room's reservations ordered by check-in date.
func (r *ReservationRepository) ForRoom(ctx context.Context, number domainroom.Number) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byRoom[number]
	result := make([]*domainreservation.Reservation, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneReservation(r.items[id]))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Range.CheckIn.Before(result[j].Range.CheckIn)
	})
	return result, nil
}

// Save persists a new reservation, assigning identity when blank.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.ID == "" {
		res.ID = domainreservation.ReservationID(uuid.NewString())
	}
	if _, exists := r.items[res.ID]; exists {
		return fault.Conflictf("memory: reservation %s already exists", res.ID)
	}
	res.Version = 1
	r.items[res.ID] = cloneReservation(res)
	r.byRoom[res.Room] = append(r.byRoom[res.Room], res.ID)
	return nil
}

// Update replaces an existing reservation, failing on a stale version.
func (r *ReservationRepository) Update(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[res.ID]
	if !ok {
		return domainreservation.ErrReservationNotFound
	}
	if current.Version != res.Version {
		return fault.Conflictf("memory: reservation %s version %d is stale", res.ID, res.Version)
	}
	res.Version++
	r.items[res.ID] = cloneReservation(res)
	return nil
}

func cloneReservation(res *domainreservation.Reservation) *domainreservation.Reservation {
	clone := *res
	clone.ClearEvents()
	if res.AddOns != nil {
		clone.AddOns = make([]domainreservation.AddOn, len(res.AddOns))
		copy(clone.AddOns, res.AddOns)
	}
	if res.Cancellation != nil {
		record := *res.Cancellation
		clone.Cancellation = &record
	}
	return &clone
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
