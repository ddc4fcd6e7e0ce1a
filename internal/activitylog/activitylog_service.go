package activitylog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// feedCap bounds the in-memory feed; the durable history lives in the store.
const feedCap = 200

// Recorder is the narrow contract mutating services depend on. Record must
// never fail the triggering business operation: persistence problems are
// logged, not returned.
type Recorder interface {
	Record(ctx context.Context, restaurantID, actorName, action, details string, category Category) Entry
}

//go:generate mockgen -source=activitylog_service.go -destination=mock/activitylog_service_mock.go -package=mock
type Service interface {
	Recorder
	List(ctx context.Context, restaurantID string, page, pageSize int) ([]EntryResponse, int64, error)
	Feed(restaurantID string) []EntryResponse
}

type service struct {
	repo   Repository
	logger *zap.Logger

	mu   sync.Mutex
	feed map[string][]Entry
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activitylog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		feed:   make(map[string][]Entry),
	}
}

// Record assigns id and timestamp, prepends the entry to the in-memory
// feed for immediate display and persists it. A failed persist is observable
// in the logs but never propagates to the caller.
func (s *service) Record(ctx context.Context, restaurantID, actorName, action, details string, category Category) Entry {
	if actorName == "" {
		actorName = "Système"
	}

	entry := Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		ActorName: actorName,
		Action:    action,
		Details:   details,
		Category:  category,
	}
	if rid, err := uuid.Parse(restaurantID); err == nil {
		entry.RestaurantID = rid
	}

	s.prependToFeed(restaurantID, entry)

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Warn("activity log entry not persisted",
			zap.String("action", action),
			zap.String("category", string(category)),
			zap.Error(err),
		)
	}

	return entry
}

func (s *service) prependToFeed(restaurantID string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := append([]Entry{entry}, s.feed[restaurantID]...)
	if len(feed) > feedCap {
		feed = feed[:feedCap]
	}
	s.feed[restaurantID] = feed
}

func (s *service) List(ctx context.Context, restaurantID string, page, pageSize int) ([]EntryResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := s.repo.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.repo.FindRecent(ctx, restaurantID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	return mapToListResponse(entries), total, nil
}

// Feed returns the in-memory entries recorded by this process, newest first.
func (s *service) Feed(restaurantID string) []EntryResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapToListResponse(s.feed[restaurantID])
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID.String(),
		Timestamp: e.Timestamp.Format(time.RFC3339),
		ActorName: e.ActorName,
		Action:    e.Action,
		Details:   e.Details,
		Category:  string(e.Category),
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res
}
