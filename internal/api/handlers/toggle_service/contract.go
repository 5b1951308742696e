package toggle_service

import (
	"context"

	toggleService "github.com/m04kA/SMC-BookingCalendar/internal/usecase/toggle_service"
)

type ToggleServiceUseCase interface {
	Execute(ctx context.Context, req *toggleService.Request) (*toggleService.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
