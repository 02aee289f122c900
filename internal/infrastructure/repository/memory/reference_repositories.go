package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
)

type SkillRepository struct {
	mu    sync.RWMutex
	items []skill.Skill
}

func NewSkillRepository(skills []skill.Skill) *SkillRepository {
	items := make([]skill.Skill, len(skills))
	copy(items, skills)
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	return &SkillRepository{items: items}
}

func (r *SkillRepository) List(_ context.Context) ([]skill.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]skill.Skill, len(r.items))
	copy(out, r.items)

	return out, nil
}

func (r *SkillRepository) GetByID(_ context.Context, skillID string) (skill.Skill, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == skillID {
			return item, true, nil
		}
	}

	return skill.Skill{}, false, nil
}

type GymRepository struct {
	mu    sync.RWMutex
	items []gym.Gym
}

func NewGymRepository(gyms []gym.Gym) *GymRepository {
	items := make([]gym.Gym, len(gyms))
	copy(items, gyms)

	return &GymRepository{items: items}
}

func (r *GymRepository) ListActive(_ context.Context) ([]gym.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gym.Gym, 0, len(r.items))
	for _, item := range r.items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *GymRepository) GetByIDs(_ context.Context, gymIDs []string) ([]gym.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gym.Gym, 0, len(gymIDs))
	for _, id := range gymIDs {
		for _, item := range r.items {
			if item.ID == id {
				out = append(out, item)
				break
			}
		}
	}

	return out, nil
}

type SportRepository struct {
	mu    sync.RWMutex
	items []sport.Sport
}

func NewSportRepository(sports []sport.Sport) *SportRepository {
	items := make([]sport.Sport, len(sports))
	copy(items, sports)

	return &SportRepository{items: items}
}

func (r *SportRepository) List(_ context.Context) ([]sport.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sport.Sport, len(r.items))
	copy(out, r.items)

	return out, nil
}

func (r *SportRepository) GetByID(_ context.Context, sportID string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == sportID {
			return item, true, nil
		}
	}

	return sport.Sport{}, false, nil
}
