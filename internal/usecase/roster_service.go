package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/platform/logging"
)

// DeleteTeamResult reports a completed team deletion. SkippedMembers counts
// roster members whose team list could not be reconciled; the deletion still
// goes through and the orphaned references are logged for cleanup.
type DeleteTeamResult struct {
	TeamID         string
	MembersUpdated int
	SkippedMembers int
}

// RosterService owns the registration lifecycle mutations: unregistering a
// payment, leaving a team and deleting a team outright. All three converge
// on the same roster-removal rules so captain transfer behaves identically
// no matter which door a member leaves through.
type RosterService struct {
	teamRepo    team.Repository
	userRepo    user.Repository
	paymentRepo payment.Repository
	logger      *logging.Logger
}

func NewRosterService(
	teamRepo team.Repository,
	userRepo user.Repository,
	paymentRepo payment.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Unregister removes a league registration: the payment's owner comes off
// the associated team roster and the payment record is deleted. Admins may
// unregister on behalf of any user.
func (s *RosterService) Unregister(ctx context.Context, principal user.Principal, paymentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Unregister")
	defer span.End()

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	p, exists, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("get payment by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: payment=%s", ErrNotFound, paymentID)
	}
	if p.UserID != principal.UserID && !principal.IsAdmin {
		return fmt.Errorf("%w: payment belongs to another user", ErrUnauthorized)
	}

	if p.TeamID != "" {
		t, teamExists, err := s.teamRepo.GetByID(ctx, p.TeamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if teamExists {
			if err := s.removeMember(ctx, t, p.UserID); err != nil {
				return err
			}
		}
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	s.logger.InfoContext(ctx, "league registration removed",
		"payment_id", paymentID,
		"user_id", p.UserID,
		"team_id", p.TeamID,
		"league_id", p.LeagueID,
	)

	return nil
}

// LeaveTeam takes the caller off a team roster. Their payment history stays
// untouched; only the captain can add them back afterwards.
func (s *RosterService) LeaveTeam(ctx context.Context, principal user.Principal, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LeaveTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if !t.HasMember(principal.UserID) {
		return fmt.Errorf("%w: user is not on the team", ErrInvalidInput)
	}

	if err := s.removeMember(ctx, t, principal.UserID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "member left team",
		"team_id", teamID,
		"user_id", principal.UserID,
	)

	return nil
}

// DeleteTeam removes a team and its registrations. Only the captain or an
// admin may delete. Member team lists are reconciled first; a member whose
// record cannot be updated is skipped rather than blocking the deletion.
// Payments tied to the team are removed by the store when the team row goes.
func (s *RosterService) DeleteTeam(ctx context.Context, principal user.Principal, teamID string) (DeleteTeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return DeleteTeamResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return DeleteTeamResult{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return DeleteTeamResult{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if t.CaptainID != principal.UserID && !principal.IsAdmin {
		return DeleteTeamResult{}, fmt.Errorf("%w: only the captain can delete the team", ErrUnauthorized)
	}

	result := DeleteTeamResult{TeamID: teamID}
	for _, memberID := range t.Roster {
		member, memberExists, err := s.userRepo.GetByID(ctx, memberID)
		if err != nil || !memberExists {
			result.SkippedMembers++
			s.logger.WarnContext(ctx, "skipping member during team deletion",
				"team_id", teamID,
				"user_id", memberID,
				"error", err,
			)
			continue
		}

		if err := s.userRepo.SetTeamIDs(ctx, memberID, member.WithoutTeam(teamID)); err != nil {
			result.SkippedMembers++
			s.logger.WarnContext(ctx, "failed to update member team list during team deletion",
				"team_id", teamID,
				"user_id", memberID,
				"error", err,
			)
			continue
		}
		result.MembersUpdated++
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return DeleteTeamResult{}, fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted",
		"team_id", teamID,
		"league_id", t.LeagueID,
		"deleted_by", principal.UserID,
		"members_updated", result.MembersUpdated,
		"members_skipped", result.SkippedMembers,
	)

	return result, nil
}

// removeMember applies the roster-removal rules, persists the team and
// reconciles the departing member's team list.
func (s *RosterService) removeMember(ctx context.Context, t team.Team, userID string) error {
	updated, changed := t.RemoveFromRoster(userID)
	if !changed {
		return nil
	}

	if err := s.teamRepo.UpdateRoster(ctx, updated); err != nil {
		return fmt.Errorf("update team roster: %w", err)
	}

	member, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user by id: %w", err)
	}
	if exists {
		if err := s.userRepo.SetTeamIDs(ctx, userID, member.WithoutTeam(t.ID)); err != nil {
			return fmt.Errorf("update user team list: %w", err)
		}
	}

	return nil
}
