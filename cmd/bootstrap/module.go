package bootstrap

import (
	"roombook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	RoomModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
