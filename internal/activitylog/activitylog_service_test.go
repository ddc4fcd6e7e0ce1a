package activitylog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resto-ops/internal/activitylog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogRepository struct {
	createFn func(ctx context.Context, entry *activitylog.Entry) error
	created  []activitylog.Entry
}

func (f *fakeLogRepository) Create(ctx context.Context, entry *activitylog.Entry) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, entry); err != nil {
			return err
		}
	}
	f.created = append(f.created, *entry)
	return nil
}

func (f *fakeLogRepository) FindRecent(ctx context.Context, restaurantID string, limit, offset int) ([]activitylog.Entry, error) {
	return f.created, nil
}

func (f *fakeLogRepository) CountByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	return int64(len(f.created)), nil
}

func TestActivityLogService_RecordAssignsIdentityAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := &fakeLogRepository{}
	svc := activitylog.NewService(repo)
	restaurantID := uuid.NewString()

	entry := svc.Record(ctx, restaurantID, "Jeanne Martin", "Archivage d'un employé", "Paul archivé", activitylog.CategoryEquipe)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.Equal(t, "Jeanne Martin", entry.ActorName)
	require.Len(t, repo.created, 1)
	assert.Equal(t, entry.ID, repo.created[0].ID)
}

func TestActivityLogService_EmptyActorDefaultsToSystem(t *testing.T) {
	ctx := context.Background()
	svc := activitylog.NewService(&fakeLogRepository{})

	entry := svc.Record(ctx, uuid.NewString(), "", "Archivage automatique", "contrat expiré", activitylog.CategoryEquipe)
	assert.Equal(t, "Système", entry.ActorName)
}

func TestActivityLogService_PersistFailureDoesNotPropagate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeLogRepository{
		createFn: func(ctx context.Context, entry *activitylog.Entry) error {
			return errors.New("store unavailable")
		},
	}
	svc := activitylog.NewService(repo)
	restaurantID := uuid.NewString()

	entry := svc.Record(ctx, restaurantID, "Jeanne", "Mise à la corbeille", "détails", activitylog.CategoryEquipe)

	// The entry is still observable in the feed.
	assert.NotEqual(t, uuid.Nil, entry.ID)
	feed := svc.Feed(restaurantID)
	require.Len(t, feed, 1)
	assert.Equal(t, "Mise à la corbeille", feed[0].Action)
}

func TestActivityLogService_FeedIsNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	svc := activitylog.NewService(&fakeLogRepository{})
	restaurantID := uuid.NewString()

	for i := 0; i < 205; i++ {
		svc.Record(ctx, restaurantID, "Jeanne", fmt.Sprintf("action %d", i), "", activitylog.CategorySystem)
	}

	feed := svc.Feed(restaurantID)
	require.Len(t, feed, 200)
	assert.Equal(t, "action 204", feed[0].Action)
	assert.Equal(t, "action 203", feed[1].Action)
}

func TestActivityLogService_FeedIsScopedPerRestaurant(t *testing.T) {
	ctx := context.Background()
	svc := activitylog.NewService(&fakeLogRepository{})
	first := uuid.NewString()
	second := uuid.NewString()

	svc.Record(ctx, first, "Jeanne", "action A", "", activitylog.CategoryEquipe)
	svc.Record(ctx, second, "Karim", "action B", "", activitylog.CategoryEquipe)

	assert.Len(t, svc.Feed(first), 1)
	assert.Len(t, svc.Feed(second), 1)
	assert.Equal(t, "action A", svc.Feed(first)[0].Action)
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"EQUIPE", "SOC", "FORMATION", "SYSTEM", "RETARD"} {
		got, ok := activitylog.ParseCategory(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, activitylog.Category(valid), got)
	}

	_, ok := activitylog.ParseCategory("AUTRE")
	assert.False(t, ok)
}
