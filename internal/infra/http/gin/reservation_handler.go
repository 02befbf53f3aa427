package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"hotelier/internal/app/commands"
	reservationapp "hotelier/internal/app/handlers/reservations"
	"hotelier/internal/app/queries"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type bookReservationRequest struct {
	RoomNumber int                        `json:"room_number"`
	GuestID    string                     `json:"guest_id"`
	CheckIn    time.Time                  `json:"check_in"`
	CheckOut   time.Time                  `json:"check_out"`
	AddOns     []reservationapp.AddOnSpec `json:"add_ons"`
}

func (h ReservationHandler) Book(c *gin.Context) {
	var req bookReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.BookReservationCommand{
		RoomNumber:      req.RoomNumber,
		GuestID:         req.GuestID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		AddOns:          req.AddOns,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationapp.BookReservationCommand, *reservationapp.BookReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) ConfirmPayment(c *gin.Context) {
	cmd := reservationapp.ConfirmPaymentCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.ConfirmPaymentCommand, *reservationapp.ConfirmPaymentResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) CheckIn(c *gin.Context) {
	cmd := reservationapp.CheckInCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.CheckInCommand, *reservationapp.CheckInResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) CheckOut(c *gin.Context) {
	cmd := reservationapp.CheckOutCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.CheckOutCommand, *reservationapp.CheckOutResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type modifyDatesRequest struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func (h ReservationHandler) ModifyDates(c *gin.Context) {
	var req modifyDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.ModifyDatesCommand{
		ReservationID: c.Param("id"),
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	}
	result, err := commands.Dispatch[reservationapp.ModifyDatesCommand, *reservationapp.ModifyDatesResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type cancelReservationRequest struct {
	Initiator string `json:"initiator"`
	Reason    string `json:"reason"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	var req cancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Initiator:     req.Initiator,
		Reason:        req.Reason,
	}
	result, err := commands.Dispatch[reservationapp.CancelReservationCommand, *reservationapp.CancelReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) CancellationQuote(c *gin.Context) {
	query := reservationapp.CancellationQuoteQuery{
		ReservationID: c.Param("id"),
		Initiator:     c.DefaultQuery("initiator", "guest"),
	}
	result, err := queries.Ask[reservationapp.CancellationQuoteQuery, *reservationapp.CancellationQuoteResult](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Get(c *gin.Context) {
	query := reservationapp.GetReservationQuery{ReservationID: c.Param("id")}
	result, err := queries.Ask[reservationapp.GetReservationQuery, *reservationapp.ReservationView](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReservationHTTP = ReservationHandler{}
