package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"hotelier/internal/app/commands"
	roomapp "hotelier/internal/app/handlers/rooms"
	"hotelier/internal/app/queries"
)

type RoomHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type registerRoomRequest struct {
	Number           int    `json:"number"`
	Category         string `json:"category"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
}

func (h RoomHandler) Register(c *gin.Context) {
	var req registerRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := roomapp.RegisterRoomCommand{
		Number:           req.Number,
		Category:         req.Category,
		NightlyRateCents: req.NightlyRateCents,
	}
	result, err := commands.Dispatch[roomapp.RegisterRoomCommand, *roomapp.RegisterRoomResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type changeRateRequest struct {
	NightlyRateCents int64 `json:"nightly_rate_cents"`
}

func (h RoomHandler) ChangeRate(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}
	var req changeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := roomapp.ChangeRoomRateCommand{Number: number, NightlyRateCents: req.NightlyRateCents}
	result, err := commands.Dispatch[roomapp.ChangeRoomRateCommand, *roomapp.ChangeRoomRateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomHandler) MarkReady(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}
	cmd := roomapp.MarkRoomReadyCommand{Number: number}
	result, err := commands.Dispatch[roomapp.MarkRoomReadyCommand, *roomapp.MarkRoomReadyResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomHandler) SearchAvailable(c *gin.Context) {
	checkIn, err := time.Parse(time.RFC3339, c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be RFC3339"})
		return
	}
	checkOut, err := time.Parse(time.RFC3339, c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be RFC3339"})
		return
	}
	query := roomapp.SearchAvailableRoomsQuery{CheckIn: checkIn, CheckOut: checkOut}
	result, err := queries.Ask[roomapp.SearchAvailableRoomsQuery, *roomapp.SearchAvailableRoomsResult](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func roomNumberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room number must be an integer"})
		return 0, false
	}
	return number, true
}

var _ RoomHTTP = RoomHandler{}
