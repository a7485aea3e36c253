package api

import (
	"net/http"

	"roombook/internal/domain/room"
	resdto "roombook/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	registry *room.Registry
}

func NewRoomHandler(registry *room.Registry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// @Summary List rooms
// @Description List the bookable room IDs
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RoomsResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.RoomsResponse{Rooms: h.registry.Rooms()})
}
