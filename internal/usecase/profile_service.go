package usecase

import (
	"context"
	"fmt"

	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/platform/logging"
)

// Profile backs the session-aware navigation header: display name, admin
// links and the team count badge.
type Profile struct {
	User      user.User
	TeamCount int
}

type ProfileService struct {
	userRepo user.Repository
	logger   *logging.Logger
}

func NewProfileService(userRepo user.Repository, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me resolves the caller's profile. A verified principal without a profile
// row, such as a freshly invited user, gets a minimal profile built from the
// token instead of an error so the header still renders.
func (s *ProfileService) Me(ctx context.Context, principal user.Principal) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Me")
	defer span.End()

	if principal.UserID == "" {
		return Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	u, exists, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return Profile{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return Profile{
			User: user.User{
				ID:      principal.UserID,
				Email:   principal.Email,
				IsAdmin: principal.IsAdmin,
			},
		}, nil
	}

	// The identity service wins on the admin flag so a revoked admin loses
	// access without waiting for a profile sync.
	u.IsAdmin = principal.IsAdmin

	return Profile{
		User:      u,
		TeamCount: len(u.TeamIDs),
	}, nil
}
