package subscribersrv

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/subscriber"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// SubscriberService provides business operations for vacancy subscriptions
type SubscriberService struct {
	repo subscriber.Repository
}

// NewSubscriberService creates a new instance of the subscriber service
func NewSubscriberService(repo subscriber.Repository) *SubscriberService {
	return &SubscriberService{
		repo: repo,
	}
}

// Subscribe registers an email for vacancy mail-outs. An unsubscribed address
// is reactivated; an active one is a conflict.
func (s *SubscriberService) Subscribe(ctx context.Context, req subscriber.SubscribeRequest) (*subscriber.Subscriber, error) {
	if !req.Email.IsValid() {
		return nil, subscriber.ErrInvalidEmail().WithDetail("email", req.Email)
	}
	if len(req.VacancyTypes) == 0 {
		return nil, subscriber.ErrInvalidRequest().WithDetail("field", "vacancy_types")
	}
	for _, t := range req.VacancyTypes {
		if !t.IsValid() {
			return nil, subscriber.ErrInvalidVacancyType().WithDetail("vacancy_type", t)
		}
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, subscriber.ErrSubscriberNotFound()) {
		return nil, errx.Wrap(err, "failed to look up subscriber", errx.TypeInternal)
	}

	if existing != nil {
		if existing.IsActive() {
			return nil, subscriber.ErrAlreadySubscribed().WithDetail("email", req.Email)
		}
		existing.Resubscribe(req.VacancyTypes)
		if err := s.repo.Update(ctx, existing.ID, existing); err != nil {
			return nil, errx.Wrap(err, "failed to reactivate subscriber", errx.TypeInternal)
		}
		return existing, nil
	}

	sub := &subscriber.Subscriber{
		ID:           kernel.NewSubscriberID(uuid.NewString()),
		Email:        req.Email,
		VacancyTypes: req.VacancyTypes,
		Subscribed:   true,
		SubscribedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, errx.Wrap(err, "failed to create subscriber", errx.TypeInternal)
	}

	return sub, nil
}

// Unsubscribe deactivates the subscription for an email.
func (s *SubscriberService) Unsubscribe(ctx context.Context, email kernel.Email) error {
	sub, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return subscriber.ErrSubscriberNotFound().WithDetail("email", email)
	}

	if err := sub.Unsubscribe(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, sub.ID, sub); err != nil {
		return errx.Wrap(err, "failed to update subscriber", errx.TypeInternal)
	}

	return nil
}

// ListSubscribers retrieves all subscribers with pagination
func (s *SubscriberService) ListSubscribers(ctx context.Context, pagination kernel.PaginationOptions) (*subscriber.PaginatedSubscribersResponse, error) {
	subs, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list subscribers", errx.TypeInternal)
	}
	return subs, nil
}

// ListActiveByVacancyType retrieves the active subscribers of a vacancy type.
// The notification dispatcher fans new-vacancy mail out over this list.
func (s *SubscriberService) ListActiveByVacancyType(ctx context.Context, t vacancy.VacancyType) ([]subscriber.Subscriber, error) {
	if !t.IsValid() {
		return nil, subscriber.ErrInvalidVacancyType().WithDetail("vacancy_type", t)
	}

	subs, err := s.repo.ListActiveByVacancyType(ctx, t)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list subscribers by type", errx.TypeInternal)
	}
	return subs, nil
}
