package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/citysports/league-registry/internal/domain/team"
)

// TeamRepository keeps teams in memory. Deleting a team cascades into the
// payment store the same way the database foreign key does, so the services
// behave identically against either backend.
type TeamRepository struct {
	mu       sync.RWMutex
	items    map[string]team.Team
	payments *PaymentRepository
}

func NewTeamRepository(teams []team.Team, payments *PaymentRepository) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = t
	}

	return &TeamRepository{
		items:    items,
		payments: payments,
	}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return t, true, nil
}

func (r *TeamRepository) ListActiveByMember(_ context.Context, userID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.items {
		if !t.Active {
			continue
		}
		if t.HasMember(userID) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TeamRepository) UpdateRoster(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[t.ID]
	if !ok {
		return nil
	}

	current.Roster = t.Roster
	current.CaptainID = t.CaptainID
	current.Active = t.Active
	current.UpdatedAt = t.UpdatedAt
	r.items[t.ID] = current

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	r.mu.Lock()
	delete(r.items, teamID)
	r.mu.Unlock()

	if r.payments != nil {
		return r.payments.DeleteByTeam(ctx, teamID)
	}

	return nil
}

func (r *TeamRepository) CountByLeague(_ context.Context, leagueID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.items {
		if t.LeagueID == leagueID && t.Active {
			count++
		}
	}

	return count, nil
}
