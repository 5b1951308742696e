package drafts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
)

// Service gives read access to drafts and lets their owner discard them
type Service struct {
	repo   DraftRepository
	logger Logger
}

// NewService creates the drafts service
func NewService(repo DraftRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetView returns the widget view of a draft owned by owner
func (s *Service) GetView(ctx context.Context, id uuid.UUID, owner string) (*calendar.View, error) {
	d, err := s.load(ctx, "GetView", id, owner)
	if err != nil {
		return nil, err
	}

	view := d.View()
	return &view, nil
}

// Discard deletes a draft owned by owner, as when the user closes the calendar
func (s *Service) Discard(ctx context.Context, id uuid.UUID, owner string) error {
	if _, err := s.load(ctx, "Discard", id, owner); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Discard: failed to delete draft=%s: %v", id, err)
		return fmt.Errorf("%w: Discard - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Discard: draft=%s deleted", id)
	return nil
}

func (s *Service) load(ctx context.Context, op string, id uuid.UUID, owner string) (*calendar.Draft, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.logger.Warn("%s: draft=%s not found", op, id)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("%s: failed to get draft=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !d.OwnedBy(owner) {
		s.logger.Warn("%s: draft=%s belongs to another user", op, id)
		return nil, ErrAccessDenied
	}
	return d, nil
}
