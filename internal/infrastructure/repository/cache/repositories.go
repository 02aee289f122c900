// Package cache wraps repositories with a TTL read-through cache. Only the
// reference catalogs live here; league, team and payment rows change under
// the user and are always read from the store.
package cache

import (
	"context"
	"strings"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	basecache "github.com/citysports/league-registry/internal/platform/cache"
)

type SkillRepository struct {
	next  skill.Repository
	cache *basecache.Store
}

func NewSkillRepository(next skill.Repository, cache *basecache.Store) *SkillRepository {
	return &SkillRepository{next: next, cache: cache}
}

func (r *SkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	v, err := r.cache.GetOrLoad(ctx, "skill:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]skill.Skill(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]skill.Skill)
	return append([]skill.Skill(nil), items...), nil
}

func (r *SkillRepository) GetByID(ctx context.Context, skillID string) (skill.Skill, bool, error) {
	key := "skill:id:" + skillID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, skillID)
		if err != nil {
			return nil, err
		}
		return cachedSkillByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return skill.Skill{}, false, err
	}

	cached, _ := v.(cachedSkillByID)
	return cached.value, cached.exists, nil
}

type cachedSkillByID struct {
	value  skill.Skill
	exists bool
}

type SportRepository struct {
	next  sport.Repository
	cache *basecache.Store
}

func NewSportRepository(next sport.Repository, cache *basecache.Store) *SportRepository {
	return &SportRepository{next: next, cache: cache}
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	v, err := r.cache.GetOrLoad(ctx, "sport:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]sport.Sport(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]sport.Sport)
	return append([]sport.Sport(nil), items...), nil
}

func (r *SportRepository) GetByID(ctx context.Context, sportID string) (sport.Sport, bool, error) {
	key := "sport:id:" + sportID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, sportID)
		if err != nil {
			return nil, err
		}
		return cachedSportByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return sport.Sport{}, false, err
	}

	cached, _ := v.(cachedSportByID)
	return cached.value, cached.exists, nil
}

type cachedSportByID struct {
	value  sport.Sport
	exists bool
}

type GymRepository struct {
	next  gym.Repository
	cache *basecache.Store
}

func NewGymRepository(next gym.Repository, cache *basecache.Store) *GymRepository {
	return &GymRepository{next: next, cache: cache}
}

func (r *GymRepository) ListActive(ctx context.Context) ([]gym.Gym, error) {
	v, err := r.cache.GetOrLoad(ctx, "gym:list:active", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gym.Gym(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gym.Gym)
	return append([]gym.Gym(nil), items...), nil
}

func (r *GymRepository) GetByIDs(ctx context.Context, gymIDs []string) ([]gym.Gym, error) {
	if len(gymIDs) == 0 {
		return nil, nil
	}

	key := "gym:ids:" + strings.Join(gymIDs, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, gymIDs)
		if err != nil {
			return nil, err
		}
		return append([]gym.Gym(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gym.Gym)
	return append([]gym.Gym(nil), items...), nil
}
