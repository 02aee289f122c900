package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	"github.com/citysports/league-registry/internal/platform/logging"
)

const dashboardWorkerCap = 8

// RosterMember is one roster entry with contact details resolved.
type RosterMember struct {
	ID    string
	Name  string
	Email string
}

// TeamCard is one team on the member dashboard with every display detail
// resolved: league, venue, captain and roster names, and the registration
// payment. Payment is virtual when no fee record exists yet.
type TeamCard struct {
	Team             team.Team
	League           league.League
	SportName        string
	SkillName        string
	LeagueSkillNames []string
	CaptainName      string
	IsCaptain        bool
	Roster           []RosterMember
	Gyms             []gym.Gym
	Payment          payment.Payment
	DayLabel         string
	ScheduleLabel    string
}

// DashboardStats are the headline numbers above the team list.
type DashboardStats struct {
	TeamCount          int
	CaptainCount       int
	OutstandingBalance float64
}

// Dashboard is the full teams-and-payments view for one member.
// OutstandingBalance always comes from the payment summary, never from
// re-adding the listed payments.
type Dashboard struct {
	Teams        []TeamCard
	Summary      payment.Summary
	Stats        DashboardStats
	Subscription *stripeapi.Subscription
}

type DashboardService struct {
	teamRepo    team.Repository
	userRepo    user.Repository
	leagueRepo  league.Repository
	sportRepo   sport.Repository
	skillRepo   skill.Repository
	gymRepo     gym.Repository
	paymentRepo payment.Repository
	billing     BillingProvider
	logger      *logging.Logger
	now         func() time.Time
}

func NewDashboardService(
	teamRepo team.Repository,
	userRepo user.Repository,
	leagueRepo league.Repository,
	sportRepo sport.Repository,
	skillRepo skill.Repository,
	gymRepo gym.Repository,
	paymentRepo payment.Repository,
	billing BillingProvider,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		leagueRepo:  leagueRepo,
		sportRepo:   sportRepo,
		skillRepo:   skillRepo,
		gymRepo:     gymRepo,
		paymentRepo: paymentRepo,
		billing:     billing,
		logger:      logger,
		now:         time.Now,
	}
}

// Load assembles the dashboard in two stages: the user's teams, payments,
// summary and skill table land in parallel, then each team's display
// details are resolved on a worker pool. Card order follows the team order
// from the store regardless of which worker finishes first.
func (s *DashboardService) Load(ctx context.Context, principal user.Principal) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Load")
	defer span.End()

	if principal.UserID == "" {
		return Dashboard{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	var (
		teams    []team.Team
		payments []payment.Payment
		summary  payment.Summary
		skills   []skill.Skill
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		teams, err = s.teamRepo.ListActiveByMember(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("list teams for user: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		payments, err = s.paymentRepo.ListByUser(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("list payments for user: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		summary, err = s.paymentRepo.SummaryByUser(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("summarize payments for user: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		skills, err = s.skillRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list skills: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	skillNames := make(map[string]string, len(skills))
	for _, item := range skills {
		skillNames[item.ID] = item.Name
	}
	paymentByTeam := make(map[string]payment.Payment, len(payments))
	for _, item := range payments {
		if item.TeamID == "" {
			continue
		}
		// Keep the earliest row when a team somehow has more than one.
		if _, ok := paymentByTeam[item.TeamID]; !ok {
			paymentByTeam[item.TeamID] = item
		}
	}

	cards, err := s.buildTeamCards(ctx, principal, teams, skillNames, paymentByTeam)
	if err != nil {
		return Dashboard{}, err
	}

	captainCount := 0
	for _, card := range cards {
		if card.IsCaptain {
			captainCount++
		}
	}

	dashboard := Dashboard{
		Teams:   cards,
		Summary: summary,
		Stats: DashboardStats{
			TeamCount:          len(cards),
			CaptainCount:       captainCount,
			OutstandingBalance: summary.TotalOutstanding,
		},
	}

	// Membership banner is decoration; a provider outage must not take the
	// dashboard down with it.
	if s.billing != nil {
		sub, active, err := s.billing.GetSubscriptionByUser(ctx, principal.UserID)
		if err != nil {
			s.logger.WarnContext(ctx, "subscription lookup failed",
				"user_id", principal.UserID,
				"error", err,
			)
		} else if active {
			dashboard.Subscription = &sub
		}
	}

	return dashboard, nil
}

func (s *DashboardService) buildTeamCards(
	ctx context.Context,
	principal user.Principal,
	teams []team.Team,
	skillNames map[string]string,
	paymentByTeam map[string]payment.Payment,
) ([]TeamCard, error) {
	if len(teams) == 0 {
		return []TeamCard{}, nil
	}

	workerCount := len(teams)
	if workerCount > dashboardWorkerCap {
		workerCount = dashboardWorkerCap
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	cards := make([]TeamCard, len(teams))
	errs := make([]error, len(teams))

	var workers sync.WaitGroup
	for idx, t := range teams {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			cards[idx], errs[idx] = s.buildTeamCard(ctx, principal, t, skillNames, paymentByTeam)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit team card task: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return cards, nil
}

func (s *DashboardService) buildTeamCard(
	ctx context.Context,
	principal user.Principal,
	t team.Team,
	skillNames map[string]string,
	paymentByTeam map[string]payment.Payment,
) (TeamCard, error) {
	card := TeamCard{
		Team:      t,
		SkillName: skillNames[t.SkillLevelID],
		IsCaptain: t.CaptainID == principal.UserID,
	}

	l, leagueExists, err := s.leagueRepo.GetByID(ctx, t.LeagueID)
	if err != nil {
		return TeamCard{}, fmt.Errorf("get league for team=%s: %w", t.ID, err)
	}
	if leagueExists {
		card.League = l
		card.DayLabel = l.DayName()
		card.ScheduleLabel = l.ScheduleLabel()

		for _, id := range l.SkillIDs {
			if name, ok := skillNames[id]; ok {
				card.LeagueSkillNames = append(card.LeagueSkillNames, name)
			}
		}

		if l.SportID != "" {
			if sp, ok, sportErr := s.sportRepo.GetByID(ctx, l.SportID); sportErr != nil {
				return TeamCard{}, fmt.Errorf("get sport for league=%s: %w", l.ID, sportErr)
			} else if ok {
				card.SportName = sp.Name
			}
		}

		if len(l.GymIDs) > 0 {
			gyms, gymErr := s.gymRepo.GetByIDs(ctx, l.GymIDs)
			if gymErr != nil {
				return TeamCard{}, fmt.Errorf("get gyms for league=%s: %w", l.ID, gymErr)
			}
			card.Gyms = gyms
		}
	}

	if t.CaptainID != "" {
		captain, ok, captainErr := s.userRepo.GetByID(ctx, t.CaptainID)
		if captainErr != nil {
			return TeamCard{}, fmt.Errorf("get captain for team=%s: %w", t.ID, captainErr)
		}
		if ok {
			card.CaptainName = captain.Name
		}
	}

	if len(t.Roster) > 0 {
		members, memberErr := s.userRepo.GetByIDs(ctx, t.Roster)
		if memberErr != nil {
			return TeamCard{}, fmt.Errorf("get roster for team=%s: %w", t.ID, memberErr)
		}
		card.Roster = make([]RosterMember, 0, len(members))
		for _, m := range members {
			card.Roster = append(card.Roster, RosterMember{ID: m.ID, Name: m.Name, Email: m.Email})
		}
	}

	if p, ok := paymentByTeam[t.ID]; ok {
		card.Payment = p
	} else {
		card.Payment = payment.Virtual(principal.UserID, t.ID, t.LeagueID, card.League.Cost, s.now().UTC())
	}

	return card, nil
}

// ListPayments returns the caller's registration fees, due date ascending.
func (s *DashboardService) ListPayments(ctx context.Context, principal user.Principal) ([]payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ListPayments")
	defer span.End()

	if principal.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	payments, err := s.paymentRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list payments for user: %w", err)
	}

	return payments, nil
}

// PaymentSummary returns the caller's aggregated balance. The dashboard's
// outstanding figure is read from here.
func (s *DashboardService) PaymentSummary(ctx context.Context, principal user.Principal) (payment.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.PaymentSummary")
	defer span.End()

	if principal.UserID == "" {
		return payment.Summary{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	summary, err := s.paymentRepo.SummaryByUser(ctx, principal.UserID)
	if err != nil {
		return payment.Summary{}, fmt.Errorf("summarize payments for user: %w", err)
	}

	return summary, nil
}
