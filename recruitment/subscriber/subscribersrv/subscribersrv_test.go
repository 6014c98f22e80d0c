package subscribersrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/subscriber"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// mockRepository implements subscriber.Repository with overridable functions
type mockRepository struct {
	CreateFunc                  func(ctx context.Context, s *subscriber.Subscriber) error
	UpdateFunc                  func(ctx context.Context, id kernel.SubscriberID, s *subscriber.Subscriber) error
	GetByIDFunc                 func(ctx context.Context, id kernel.SubscriberID) (*subscriber.Subscriber, error)
	GetByEmailFunc              func(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error)
	ListFunc                    func(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[subscriber.Subscriber], error)
	ListActiveByVacancyTypeFunc func(ctx context.Context, t vacancy.VacancyType) ([]subscriber.Subscriber, error)
}

func (m *mockRepository) Create(ctx context.Context, s *subscriber.Subscriber) error {
	return m.CreateFunc(ctx, s)
}
func (m *mockRepository) Update(ctx context.Context, id kernel.SubscriberID, s *subscriber.Subscriber) error {
	return m.UpdateFunc(ctx, id, s)
}
func (m *mockRepository) GetByID(ctx context.Context, id kernel.SubscriberID) (*subscriber.Subscriber, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) GetByEmail(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[subscriber.Subscriber], error) {
	return m.ListFunc(ctx, p)
}
func (m *mockRepository) ListActiveByVacancyType(ctx context.Context, t vacancy.VacancyType) ([]subscriber.Subscriber, error) {
	return m.ListActiveByVacancyTypeFunc(ctx, t)
}

func TestSubscribeNewEmail(t *testing.T) {
	var created *subscriber.Subscriber
	repo := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
			return nil, subscriber.ErrSubscriberNotFound()
		},
		CreateFunc: func(ctx context.Context, s *subscriber.Subscriber) error {
			created = s
			return nil
		},
	}
	svc := NewSubscriberService(repo)

	sub, err := svc.Subscribe(context.Background(), subscriber.SubscribeRequest{
		Email:        kernel.Email("jobs@example.com"),
		VacancyTypes: []vacancy.VacancyType{vacancy.VacancyTypePermanent, vacancy.VacancyTypeInternship},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, sub.Subscribed)
	assert.Len(t, sub.VacancyTypes, 2)
}

func TestSubscribeDuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
			return &subscriber.Subscriber{
				ID:         kernel.SubscriberID("s1"),
				Email:      email,
				Subscribed: true,
			}, nil
		},
	}
	svc := NewSubscriberService(repo)

	_, err := svc.Subscribe(context.Background(), subscriber.SubscribeRequest{
		Email:        kernel.Email("jobs@example.com"),
		VacancyTypes: []vacancy.VacancyType{vacancy.VacancyTypePermanent},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, subscriber.ErrAlreadySubscribed())
}

func TestSubscribeReactivatesUnsubscribed(t *testing.T) {
	past := time.Now().Add(-30 * 24 * time.Hour)
	stored := &subscriber.Subscriber{
		ID:             kernel.SubscriberID("s1"),
		Email:          kernel.Email("jobs@example.com"),
		VacancyTypes:   []vacancy.VacancyType{vacancy.VacancyTypeContract},
		Subscribed:     false,
		UnsubscribedAt: &past,
	}
	updated := false
	repo := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.SubscriberID, s *subscriber.Subscriber) error {
			updated = true
			return nil
		},
	}
	svc := NewSubscriberService(repo)

	sub, err := svc.Subscribe(context.Background(), subscriber.SubscribeRequest{
		Email:        kernel.Email("jobs@example.com"),
		VacancyTypes: []vacancy.VacancyType{vacancy.VacancyTypeGraduate},
	})

	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, sub.Subscribed)
	assert.Nil(t, sub.UnsubscribedAt)
	assert.Equal(t, []vacancy.VacancyType{vacancy.VacancyTypeGraduate}, sub.VacancyTypes)
}

func TestSubscribeRejectsInvalidInput(t *testing.T) {
	svc := NewSubscriberService(&mockRepository{})

	_, err := svc.Subscribe(context.Background(), subscriber.SubscribeRequest{
		Email:        kernel.Email("not-an-email"),
		VacancyTypes: []vacancy.VacancyType{vacancy.VacancyTypePermanent},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, subscriber.ErrInvalidEmail())

	_, err = svc.Subscribe(context.Background(), subscriber.SubscribeRequest{
		Email:        kernel.Email("jobs@example.com"),
		VacancyTypes: []vacancy.VacancyType{"freelance"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, subscriber.ErrInvalidVacancyType())
}

func TestUnsubscribeTwiceFails(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
			return &subscriber.Subscriber{
				ID:             kernel.SubscriberID("s1"),
				Email:          email,
				Subscribed:     false,
				UnsubscribedAt: &past,
			}, nil
		},
	}
	svc := NewSubscriberService(repo)

	err := svc.Unsubscribe(context.Background(), kernel.Email("jobs@example.com"))

	require.Error(t, err)
	assert.ErrorIs(t, err, subscriber.ErrAlreadyUnsubscribed())
}

func TestWantsType(t *testing.T) {
	s := &subscriber.Subscriber{
		VacancyTypes: []vacancy.VacancyType{vacancy.VacancyTypePermanent},
	}

	assert.True(t, s.WantsType(vacancy.VacancyTypePermanent))
	assert.False(t, s.WantsType(vacancy.VacancyTypeInternship))
}
