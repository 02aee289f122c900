package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	"github.com/citysports/league-registry/internal/platform/logging"
)

// CatalogEntry is one league as shown on the public catalog, with reference
// names resolved and availability computed from current registrations.
type CatalogEntry struct {
	League         league.League
	SportName      string
	SkillNames     []string
	Gyms           []gym.Gym
	TeamCount      int
	SpotsRemaining int
	SpotsLabel     string
	DayLabel       string
	ScheduleLabel  string
}

// EditorData bundles everything the admin league editor needs in one load:
// the league itself, the reference tables for its dropdowns and the provider
// product catalog for fee linking.
type EditorData struct {
	League          league.League
	Sports          []sport.Sport
	Skills          []skill.Skill
	Gyms            []gym.Gym
	Products        []stripeapi.Product
	LinkedProductID string
}

// UpdateLeagueInput carries the editable league fields plus the provider
// product the fee should be linked to. An empty ProductID unlinks.
type UpdateLeagueInput struct {
	LeagueID    string
	Name        string
	Description string
	Location    string
	SportID     string
	SkillID     string
	SkillIDs    []string
	GymIDs      []string
	DayOfWeek   *int
	HideDay     bool
	StartDate   string
	EndDate     string
	Year        string
	Cost        float64
	MaxTeams    int
	ProductID   string
}

// UpdateLeagueResult reports a saved league along with a non-fatal warning.
// Product linking is best effort: a provider failure after the league row is
// saved surfaces here instead of failing the update.
type UpdateLeagueResult struct {
	League  league.League
	Warning string
}

// WarningProductLinkFailed is returned verbatim to the editor UI.
const WarningProductLinkFailed = "League updated but product linking failed"

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	sportRepo  sport.Repository
	skillRepo  skill.Repository
	gymRepo    gym.Repository
	billing    BillingProvider
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	sportRepo sport.Repository,
	skillRepo skill.Repository,
	gymRepo gym.Repository,
	billing BillingProvider,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		sportRepo:  sportRepo,
		skillRepo:  skillRepo,
		gymRepo:    gymRepo,
		billing:    billing,
		logger:     logger,
		now:        time.Now,
	}
}

// ListCatalog returns active leagues with availability badges for the public
// catalog page.
func (s *LeagueService) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListCatalog")
	defer span.End()

	var (
		leagues []league.League
		sports  []sport.Sport
		skills  []skill.Skill
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		leagues, err = s.leagueRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list leagues: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		sports, err = s.sportRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list sports: %w", err)
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
		return nil, err
	}

	sportNames := make(map[string]string, len(sports))
	for _, item := range sports {
		sportNames[item.ID] = item.Name
	}
	skillNames := make(map[string]string, len(skills))
	for _, item := range skills {
		skillNames[item.ID] = item.Name
	}

	entries := make([]CatalogEntry, 0, len(leagues))
	for _, l := range leagues {
		if !l.Active {
			continue
		}
		entry, err := s.buildCatalogEntry(ctx, l, sportNames, skillNames)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetCatalogEntry returns one league with availability, for the league
// detail page.
func (s *LeagueService) GetCatalogEntry(ctx context.Context, leagueID string) (CatalogEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetCatalogEntry")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return CatalogEntry{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return CatalogEntry{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return CatalogEntry{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	sportNames := map[string]string{}
	if l.SportID != "" {
		if sp, ok, sportErr := s.sportRepo.GetByID(ctx, l.SportID); sportErr != nil {
			return CatalogEntry{}, fmt.Errorf("get sport by id: %w", sportErr)
		} else if ok {
			sportNames[sp.ID] = sp.Name
		}
	}

	skills, err := s.skillRepo.List(ctx)
	if err != nil {
		return CatalogEntry{}, fmt.Errorf("list skills: %w", err)
	}
	skillNames := make(map[string]string, len(skills))
	for _, item := range skills {
		skillNames[item.ID] = item.Name
	}

	return s.buildCatalogEntry(ctx, l, sportNames, skillNames)
}

func (s *LeagueService) buildCatalogEntry(
	ctx context.Context,
	l league.League,
	sportNames map[string]string,
	skillNames map[string]string,
) (CatalogEntry, error) {
	teamCount, err := s.teamRepo.CountByLeague(ctx, l.ID)
	if err != nil {
		return CatalogEntry{}, fmt.Errorf("count teams for league=%s: %w", l.ID, err)
	}

	var gyms []gym.Gym
	if len(l.GymIDs) > 0 {
		gyms, err = s.gymRepo.GetByIDs(ctx, l.GymIDs)
		if err != nil {
			return CatalogEntry{}, fmt.Errorf("get gyms for league=%s: %w", l.ID, err)
		}
	}

	names := make([]string, 0, len(l.SkillIDs))
	for _, id := range l.SkillIDs {
		if name, ok := skillNames[id]; ok {
			names = append(names, name)
		}
	}

	spots := l.SpotsRemaining(teamCount)

	return CatalogEntry{
		League:         l,
		SportName:      sportNames[l.SportID],
		SkillNames:     names,
		Gyms:           gyms,
		TeamCount:      teamCount,
		SpotsRemaining: spots,
		SpotsLabel:     league.SpotsText(spots),
		DayLabel:       l.DayName(),
		ScheduleLabel:  l.ScheduleLabel(),
	}, nil
}

// EditorData loads the admin league editor. Only admins may call it.
func (s *LeagueService) EditorData(ctx context.Context, principal user.Principal, leagueID string) (EditorData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.EditorData")
	defer span.End()

	if !principal.IsAdmin {
		return EditorData{}, fmt.Errorf("%w: admin access required", ErrUnauthorized)
	}

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return EditorData{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	var data EditorData

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("get league by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
		}
		data.League = l
		return nil
	})
	p.Go(func(ctx context.Context) error {
		sports, err := s.sportRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list sports: %w", err)
		}
		data.Sports = sports
		return nil
	})
	p.Go(func(ctx context.Context) error {
		skills, err := s.skillRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list skills: %w", err)
		}
		data.Skills = skills
		return nil
	})
	p.Go(func(ctx context.Context) error {
		gyms, err := s.gymRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list active gyms: %w", err)
		}
		data.Gyms = gyms
		return nil
	})
	p.Go(func(ctx context.Context) error {
		products, err := s.billing.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("list billing products: %w", err)
		}
		data.Products = products
		return nil
	})
	p.Go(func(ctx context.Context) error {
		product, linked, err := s.billing.GetProductByLeague(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("get linked billing product: %w", err)
		}
		if linked {
			data.LinkedProductID = product.ID
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return EditorData{}, err
	}

	return data, nil
}

// UpdateLeague saves the league and then relinks the provider product. The
// save is authoritative; a product relink failure downgrades to a warning so
// admins do not lose their edits over a provider outage.
func (s *LeagueService) UpdateLeague(ctx context.Context, principal user.Principal, input UpdateLeagueInput) (UpdateLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateLeague")
	defer span.End()

	if !principal.IsAdmin {
		return UpdateLeagueResult{}, fmt.Errorf("%w: admin access required", ErrUnauthorized)
	}

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	input.SportID = strings.TrimSpace(input.SportID)
	input.ProductID = strings.TrimSpace(input.ProductID)

	if input.LeagueID == "" {
		return UpdateLeagueResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return UpdateLeagueResult{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.SportID == "" {
		return UpdateLeagueResult{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}
	if input.MaxTeams <= 0 {
		return UpdateLeagueResult{}, fmt.Errorf("%w: max teams must be positive", ErrInvalidInput)
	}
	if input.Cost < 0 {
		return UpdateLeagueResult{}, fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}

	current, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return UpdateLeagueResult{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return UpdateLeagueResult{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	updated := current
	updated.Name = input.Name
	updated.Description = input.Description
	updated.Location = input.Location
	updated.SportID = input.SportID
	updated.SkillID = input.SkillID
	updated.SkillIDs = input.SkillIDs
	updated.GymIDs = input.GymIDs
	updated.DayOfWeek = input.DayOfWeek
	updated.HideDay = input.HideDay
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	updated.Year = input.Year
	updated.Cost = input.Cost
	updated.MaxTeams = input.MaxTeams
	updated.UpdatedAt = s.now().UTC()

	if err := updated.Validate(); err != nil {
		return UpdateLeagueResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Update(ctx, updated); err != nil {
		return UpdateLeagueResult{}, fmt.Errorf("update league: %w", err)
	}

	result := UpdateLeagueResult{League: updated}
	if err := s.relinkProduct(ctx, updated.ID, input.ProductID); err != nil {
		s.logger.WarnContext(ctx, "league product relink failed",
			"league_id", updated.ID,
			"product_id", input.ProductID,
			"error", err,
		)
		result.Warning = WarningProductLinkFailed
	}

	s.logger.InfoContext(ctx, "league updated",
		"league_id", updated.ID,
		"admin_user_id", principal.UserID,
	)

	return result, nil
}

func (s *LeagueService) relinkProduct(ctx context.Context, leagueID, productID string) error {
	current, linked, err := s.billing.GetProductByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get linked billing product: %w", err)
	}

	if linked && current.ID != productID {
		if err := s.billing.UnlinkProduct(ctx, current.ID); err != nil {
			return fmt.Errorf("unlink product=%s: %w", current.ID, err)
		}
	}

	if productID != "" && (!linked || current.ID != productID) {
		if err := s.billing.LinkProductToLeague(ctx, productID, leagueID); err != nil {
			return fmt.Errorf("link product=%s: %w", productID, err)
		}
	}

	return nil
}
