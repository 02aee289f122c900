package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	basecache "github.com/citysports/league-registry/internal/platform/cache"
)

type countingSkillRepo struct {
	next      skill.Repository
	listCalls int
	getCalls  int
}

func (r *countingSkillRepo) List(ctx context.Context) ([]skill.Skill, error) {
	r.listCalls++
	return r.next.List(ctx)
}

func (r *countingSkillRepo) GetByID(ctx context.Context, skillID string) (skill.Skill, bool, error) {
	r.getCalls++
	return r.next.GetByID(ctx, skillID)
}

type countingGymRepo struct {
	next      gym.Repository
	listCalls int
}

func (r *countingGymRepo) ListActive(ctx context.Context) ([]gym.Gym, error) {
	r.listCalls++
	return r.next.ListActive(ctx)
}

func (r *countingGymRepo) GetByIDs(ctx context.Context, gymIDs []string) ([]gym.Gym, error) {
	return r.next.GetByIDs(ctx, gymIDs)
}

func TestSkillRepositoryCachesList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingSkillRepo{next: memory.NewSkillRepository(memory.SeedSkills())}
	repo := NewSkillRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, next.listCalls)

	// Returned slices must be copies so callers cannot poison the cache.
	first[0].Name = "mutated"
	third, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "mutated", third[0].Name)
}

func TestSkillRepositoryCachesMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingSkillRepo{next: memory.NewSkillRepository(memory.SeedSkills())}
	repo := NewSkillRepository(next, basecache.NewStore(time.Minute))

	_, exists, err := repo.GetByID(ctx, "skill-unknown")
	require.NoError(t, err)
	require.False(t, exists)

	_, exists, err = repo.GetByID(ctx, "skill-unknown")
	require.NoError(t, err)
	require.False(t, exists)
	require.Equal(t, 1, next.getCalls)
}

func TestGymRepositoryCachesActiveList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingGymRepo{next: memory.NewGymRepository(memory.SeedGyms())}
	repo := NewGymRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.ListActive(ctx)
	require.NoError(t, err)
	for _, g := range first {
		require.True(t, g.Active)
	}

	_, err = repo.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, next.listCalls)
}

func TestGymRepositoryGetByIDsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewGymRepository(memory.NewGymRepository(memory.SeedGyms()), basecache.NewStore(time.Minute))

	got, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
