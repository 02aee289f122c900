package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/usecase"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	dashboard, err := h.dashboardService.Load(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "load dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	teams := make([]teamCardDTO, 0, len(dashboard.Teams))
	for _, card := range dashboard.Teams {
		teams = append(teams, teamCardToDTO(ctx, card))
	}

	dto := dashboardDTO{
		Teams:   teams,
		Summary: paymentSummaryToDTO(ctx, dashboard.Summary),
		Stats: dashboardStatsDTO{
			TeamCount:          dashboard.Stats.TeamCount,
			CaptainCount:       dashboard.Stats.CaptainCount,
			OutstandingBalance: dashboard.Stats.OutstandingBalance,
		},
	}
	if dashboard.Subscription != nil {
		dto.Subscription = &subscriptionDTO{
			ID:                dashboard.Subscription.ID,
			Status:            dashboard.Subscription.Status,
			PlanName:          dashboard.Subscription.PlanName,
			CurrentPeriodEnd:  dashboard.Subscription.CurrentPeriodEnd.UTC().Format(time.RFC3339),
			CancelAtPeriodEnd: dashboard.Subscription.CancelAtPeriodEnd,
		}
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPayments")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	payments, err := h.dashboardService.ListPayments(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list payments failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		items = append(items, paymentToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyPaymentSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPaymentSummary")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	summary, err := h.dashboardService.PaymentSummary(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "payment summary failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentSummaryToDTO(ctx, summary))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	profile, err := h.profileService.Me(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileDTO{
		ID:        profile.User.ID,
		Name:      profile.User.Name,
		Email:     profile.User.Email,
		Phone:     profile.User.Phone,
		IsAdmin:   profile.User.IsAdmin,
		TeamCount: profile.TeamCount,
	})
}

type dashboardDTO struct {
	Teams        []teamCardDTO     `json:"teams"`
	Summary      paymentSummaryDTO `json:"summary"`
	Stats        dashboardStatsDTO `json:"stats"`
	Subscription *subscriptionDTO  `json:"subscription,omitempty"`
}

type dashboardStatsDTO struct {
	TeamCount          int     `json:"teamCount"`
	CaptainCount       int     `json:"captainCount"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}

type subscriptionDTO struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	PlanName          string `json:"planName"`
	CurrentPeriodEnd  string `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
}

type teamCardDTO struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	LeagueID         string            `json:"leagueId"`
	LeagueName       string            `json:"leagueName"`
	SportName        string            `json:"sportName"`
	SkillName        string            `json:"skillName,omitempty"`
	LeagueSkillNames []string          `json:"leagueSkillNames"`
	CaptainName      string            `json:"captainName"`
	IsCaptain        bool              `json:"isCaptain"`
	Roster           []rosterMemberDTO `json:"roster"`
	Gyms             []gymDTO          `json:"gyms"`
	DayLabel         string            `json:"dayLabel"`
	ScheduleLabel    string            `json:"scheduleLabel"`
	Payment          paymentDTO        `json:"payment"`
}

type rosterMemberDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type paymentDTO struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"teamId,omitempty"`
	LeagueID    string  `json:"leagueId"`
	AmountDue   float64 `json:"amountDue"`
	AmountPaid  float64 `json:"amountPaid"`
	Outstanding float64 `json:"outstanding"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
	Notes       string  `json:"notes,omitempty"`
	Virtual     bool    `json:"virtual"`
}

type paymentSummaryDTO struct {
	TotalDue         float64 `json:"totalDue"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	PendingCount     int     `json:"pendingCount"`
	OverdueCount     int     `json:"overdueCount"`
}

type profileDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	TeamCount int    `json:"teamCount"`
}

func teamCardToDTO(ctx context.Context, card usecase.TeamCard) teamCardDTO {
	ctx, span := startSpan(ctx, "httpapi.teamCardToDTO")
	defer span.End()

	roster := make([]rosterMemberDTO, 0, len(card.Roster))
	for _, member := range card.Roster {
		roster = append(roster, rosterMemberDTO{
			ID:    member.ID,
			Name:  member.Name,
			Email: member.Email,
		})
	}
	gyms := make([]gymDTO, 0, len(card.Gyms))
	for _, g := range card.Gyms {
		gyms = append(gyms, gymToDTO(ctx, g))
	}

	return teamCardDTO{
		ID:               card.Team.ID,
		Name:             card.Team.Name,
		LeagueID:         card.Team.LeagueID,
		LeagueName:       card.League.Name,
		SportName:        card.SportName,
		SkillName:        card.SkillName,
		LeagueSkillNames: append([]string(nil), card.LeagueSkillNames...),
		CaptainName:      card.CaptainName,
		IsCaptain:        card.IsCaptain,
		Roster:           roster,
		Gyms:             gyms,
		DayLabel:         card.DayLabel,
		ScheduleLabel:    card.ScheduleLabel,
		Payment:          paymentToDTO(ctx, card.Payment),
	}
}

func paymentToDTO(ctx context.Context, p payment.Payment) paymentDTO {
	ctx, span := startSpan(ctx, "httpapi.paymentToDTO")
	defer span.End()

	return paymentDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		LeagueID:    p.LeagueID,
		AmountDue:   p.AmountDue,
		AmountPaid:  p.AmountPaid,
		Outstanding: p.Outstanding(),
		Status:      string(p.Status),
		DueDate:     p.DueDate.UTC().Format(time.RFC3339),
		Notes:       p.Notes,
		Virtual:     p.IsVirtual(),
	}
}

func paymentSummaryToDTO(ctx context.Context, s payment.Summary) paymentSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.paymentSummaryToDTO")
	defer span.End()

	return paymentSummaryDTO{
		TotalDue:         s.TotalDue,
		TotalPaid:        s.TotalPaid,
		TotalOutstanding: s.TotalOutstanding,
		PendingCount:     s.PendingCount,
		OverdueCount:     s.OverdueCount,
	}
}
