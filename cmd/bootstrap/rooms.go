package bootstrap

import (
	"roombook/internal/domain/room"
	"roombook/internal/pkg/config"

	"go.uber.org/fx"
)

var RoomModule = fx.Module("rooms",
	fx.Provide(
		NewRoomRegistry,
	),
)

func NewRoomRegistry(cfg config.Config) (*room.Registry, error) {
	return room.NewRegistry(cfg.Booking.Rooms)
}
