package get_facility_availability

import (
	"context"

	getAvailability "github.com/m04kA/SMC-TurfService/internal/usecase/get_facility_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
