package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	"github.com/citysports/league-registry/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	entries, err := h.leagueService.ListCatalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catalogEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, catalogEntryToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	entry, err := h.leagueService.GetCatalogEntry(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catalogEntryToDTO(ctx, entry))
}

func (h *Handler) GetLeagueEditor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueEditor")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	data, err := h.leagueService.EditorData(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league editor failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	sports := make([]sportDTO, 0, len(data.Sports))
	for _, s := range data.Sports {
		sports = append(sports, sportDTO{ID: s.ID, Name: s.Name})
	}
	skills := make([]skillDTO, 0, len(data.Skills))
	for _, s := range data.Skills {
		skills = append(skills, skillDTO{ID: s.ID, Name: s.Name})
	}
	gyms := make([]gymDTO, 0, len(data.Gyms))
	for _, g := range data.Gyms {
		gyms = append(gyms, gymToDTO(ctx, g))
	}
	products := make([]productDTO, 0, len(data.Products))
	for _, p := range data.Products {
		products = append(products, productToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, leagueEditorDTO{
		League:          leagueToAdminDTO(ctx, data.League),
		Sports:          sports,
		Skills:          skills,
		Gyms:            gyms,
		Products:        products,
		LinkedProductID: data.LinkedProductID,
	})
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req updateLeagueRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leagueService.UpdateLeague(ctx, principal, usecase.UpdateLeagueInput{
		LeagueID:    leagueID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		SportID:     req.SportID,
		SkillID:     req.SkillID,
		SkillIDs:    req.SkillIDs,
		GymIDs:      req.GymIDs,
		DayOfWeek:   req.DayOfWeek,
		HideDay:     req.HideDay,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Year:        req.Year,
		Cost:        req.Cost,
		MaxTeams:    req.MaxTeams,
		ProductID:   req.ProductID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, updateLeagueResponse{
		League:  leagueToAdminDTO(ctx, result.League),
		Warning: result.Warning,
	})
}

type updateLeagueRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Location    string   `json:"location" validate:"max=200"`
	SportID     string   `json:"sportId" validate:"required"`
	SkillID     string   `json:"skillId"`
	SkillIDs    []string `json:"skillIds" validate:"dive,required"`
	GymIDs      []string `json:"gymIds" validate:"dive,required"`
	DayOfWeek   *int     `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	HideDay     bool     `json:"hideDay"`
	StartDate   string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Year        string   `json:"year" validate:"max=16"`
	Cost        float64  `json:"cost" validate:"min=0"`
	MaxTeams    int      `json:"maxTeams" validate:"required,min=1"`
	ProductID   string   `json:"productId"`
}

type updateLeagueResponse struct {
	League  leagueAdminDTO `json:"league"`
	Warning string         `json:"warning,omitempty"`
}

type catalogEntryDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	SportName      string   `json:"sportName"`
	SkillNames     []string `json:"skillNames"`
	Gyms           []gymDTO `json:"gyms"`
	DayLabel       string   `json:"dayLabel"`
	ScheduleLabel  string   `json:"scheduleLabel"`
	Cost           float64  `json:"cost"`
	TeamCount      int      `json:"teamCount"`
	MaxTeams       int      `json:"maxTeams"`
	SpotsRemaining int      `json:"spotsRemaining"`
	SpotsLabel     string   `json:"spotsLabel"`
}

type leagueAdminDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	SportID     string   `json:"sportId"`
	SkillID     string   `json:"skillId,omitempty"`
	SkillIDs    []string `json:"skillIds"`
	GymIDs      []string `json:"gymIds"`
	DayOfWeek   *int     `json:"dayOfWeek"`
	HideDay     bool     `json:"hideDay"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Year        string   `json:"year"`
	Cost        float64  `json:"cost"`
	MaxTeams    int      `json:"maxTeams"`
	Active      bool     `json:"active"`
}

type leagueEditorDTO struct {
	League          leagueAdminDTO `json:"league"`
	Sports          []sportDTO     `json:"sports"`
	Skills          []skillDTO     `json:"skills"`
	Gyms            []gymDTO       `json:"gyms"`
	Products        []productDTO   `json:"products"`
	LinkedProductID string         `json:"linkedProductId,omitempty"`
}

type sportDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type skillDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gymDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Instructions string `json:"instructions,omitempty"`
}

type productDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	LeagueID string  `json:"leagueId,omitempty"`
}

func catalogEntryToDTO(ctx context.Context, entry usecase.CatalogEntry) catalogEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.catalogEntryToDTO")
	defer span.End()

	gyms := make([]gymDTO, 0, len(entry.Gyms))
	for _, g := range entry.Gyms {
		gyms = append(gyms, gymToDTO(ctx, g))
	}

	return catalogEntryDTO{
		ID:             entry.League.ID,
		Name:           entry.League.Name,
		Description:    entry.League.Description,
		Location:       entry.League.Location,
		SportName:      entry.SportName,
		SkillNames:     append([]string(nil), entry.SkillNames...),
		Gyms:           gyms,
		DayLabel:       entry.DayLabel,
		ScheduleLabel:  entry.ScheduleLabel,
		Cost:           entry.League.Cost,
		TeamCount:      entry.TeamCount,
		MaxTeams:       entry.League.MaxTeams,
		SpotsRemaining: entry.SpotsRemaining,
		SpotsLabel:     entry.SpotsLabel,
	}
}

func leagueToAdminDTO(ctx context.Context, l league.League) leagueAdminDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToAdminDTO")
	defer span.End()

	return leagueAdminDTO{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Location:    l.Location,
		SportID:     l.SportID,
		SkillID:     l.SkillID,
		SkillIDs:    append([]string(nil), l.SkillIDs...),
		GymIDs:      append([]string(nil), l.GymIDs...),
		DayOfWeek:   l.DayOfWeek,
		HideDay:     l.HideDay,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Year:        l.Year,
		Cost:        l.Cost,
		MaxTeams:    l.MaxTeams,
		Active:      l.Active,
	}
}

func gymToDTO(ctx context.Context, g gym.Gym) gymDTO {
	ctx, span := startSpan(ctx, "httpapi.gymToDTO")
	defer span.End()

	return gymDTO{
		ID:           g.ID,
		Name:         g.Name,
		Address:      g.Address,
		Instructions: g.Instructions,
	}
}

func productToDTO(ctx context.Context, p stripeapi.Product) productDTO {
	ctx, span := startSpan(ctx, "httpapi.productToDTO")
	defer span.End()

	return productDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		LeagueID: p.LeagueID,
	}
}
