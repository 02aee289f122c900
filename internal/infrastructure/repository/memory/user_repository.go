package memory

import (
	"context"
	"sync"

	"github.com/citysports/league-registry/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.ID] = u
	}

	return &UserRepository{items: items}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[userID]
	if !ok {
		return user.User{}, false, nil
	}

	return u, true, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(userIDs))
	for _, id := range userIDs {
		if u, ok := r.items[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

func (r *UserRepository) SetTeamIDs(_ context.Context, userID string, teamIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return nil
	}

	u.TeamIDs = teamIDs
	r.items[userID] = u

	return nil
}
