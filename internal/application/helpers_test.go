package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	subDomain "github.com/onlyfin/service-social/internal/domain/subscription"
	userDomain "github.com/onlyfin/service-social/internal/domain/user"
	"github.com/onlyfin/service-social/internal/mocks"
	"github.com/onlyfin/service-social/pkg/kafka"
)

func newTestUser(username string) *userDomain.User {
	return userDomain.Reconstruct(uuid.New(), username, time.Now().UTC())
}

// knownUsers makes repo resolve each given user by username and report every
// other name as missing.
func knownUsers(repo *mocks.UserRepository, users ...*userDomain.User) {
	for _, u := range users {
		repo.On("FindByUsername", mock.Anything, u.Username()).Return(u, nil)
	}
	repo.On("FindByUsername", mock.Anything, mock.Anything).Return(nil, userDomain.ErrNotFound)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(ce kafka.CloudEvent) bool { return ce.Type == eventType })
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

// memSubscriptionRepo is an in-memory SubscriptionRepository keyed by the
// composite id.
type memSubscriptionRepo struct {
	mu   sync.Mutex
	rows map[subDomain.SubscriptionID]*subDomain.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{rows: make(map[subDomain.SubscriptionID]*subDomain.Subscription)}
}

func (r *memSubscriptionRepo) Save(_ context.Context, s *subDomain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID()]; !ok {
		r.rows[s.ID()] = s
	}
	return nil
}

func (r *memSubscriptionRepo) DeleteByID(_ context.Context, id subDomain.SubscriptionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memSubscriptionRepo) ExistsByID(_ context.Context, id subDomain.SubscriptionID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memSubscriptionRepo) snapshot() map[subDomain.SubscriptionID]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[subDomain.SubscriptionID]bool, len(r.rows))
	for id := range r.rows {
		out[id] = true
	}
	return out
}
