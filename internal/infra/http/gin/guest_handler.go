package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hotelier/internal/app/commands"
	guestapp "hotelier/internal/app/handlers/guests"
	"hotelier/internal/app/queries"
)

type GuestHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type registerGuestRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h GuestHandler) Register(c *gin.Context) {
	var req registerGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := guestapp.RegisterGuestCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	result, err := commands.Dispatch[guestapp.RegisterGuestCommand, *guestapp.RegisterGuestResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func (h GuestHandler) Get(c *gin.Context) {
	query := guestapp.GetGuestQuery{GuestID: c.Param("id")}
	result, err := queries.Ask[guestapp.GetGuestQuery, *guestapp.GuestView](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ GuestHTTP = GuestHandler{}
