package rooms

import (
	"context"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/uow"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/fault"
)

const markRoomReadyKey = "room.mark_ready"

type MarkRoomReadyCommand struct {
	Number int
}

func (c MarkRoomReadyCommand) Key() string { return markRoomReadyKey }

type MarkRoomReadyResult struct {
	Number    int    `json:"number"`
	Occupancy string `json:"occupancy"`
}

// MarkRoomReadyHandler is the housekeeping action that returns a cleaned
// room to the vacant pool.
type MarkRoomReadyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *MarkRoomReadyHandler) Handle(ctx context.Context, cmd MarkRoomReadyCommand) (*MarkRoomReadyResult, error) {
	var result *MarkRoomReadyResult
	err := uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		rm, err := unit.Rooms().ByNumber(ctx, domainroom.Number(cmd.Number))
		if err != nil {
			return err
		}
		if rm.Occupancy == domainroom.OccupancyOccupied {
			return fault.Conflictf("rooms: room %d is occupied", cmd.Number)
		}
		if err := unit.Rooms().SetOccupancy(ctx, rm.Number, domainroom.OccupancyVacant); err != nil {
			return err
		}
		result = &MarkRoomReadyResult{Number: int(rm.Number), Occupancy: string(domainroom.OccupancyVacant)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[MarkRoomReadyCommand, *MarkRoomReadyResult] = (*MarkRoomReadyHandler)(nil)
