package discard_draft

import (
	"context"

	"github.com/google/uuid"
)

type DraftService interface {
	Discard(ctx context.Context, id uuid.UUID, owner string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
