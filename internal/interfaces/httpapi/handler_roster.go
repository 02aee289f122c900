package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/citysports/league-registry/internal/usecase"
)

// Unregister removes one registration payment and takes the payer off the
// team's roster.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Unregister")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	paymentID := strings.TrimSpace(r.PathValue("paymentID"))
	if paymentID == "" {
		writeError(ctx, w, fmt.Errorf("%w: payment id is required", usecase.ErrInvalidInput))
		return
	}

	if err := h.rosterService.Unregister(ctx, principal, paymentID); err != nil {
		h.logger.WarnContext(ctx, "unregister failed", "payment_id", paymentID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "unregistered"})
}

func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if teamID == "" {
		writeError(ctx, w, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput))
		return
	}

	if err := h.rosterService.LeaveTeam(ctx, principal, teamID); err != nil {
		h.logger.WarnContext(ctx, "leave team failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "left"})
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if teamID == "" {
		writeError(ctx, w, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput))
		return
	}

	result, err := h.rosterService.DeleteTeam(ctx, principal, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteTeamResponse{
		TeamID:         result.TeamID,
		MembersUpdated: result.MembersUpdated,
		SkippedMembers: result.SkippedMembers,
	})
}

type deleteTeamResponse struct {
	TeamID         string `json:"teamId"`
	MembersUpdated int    `json:"membersUpdated"`
	SkippedMembers int    `json:"skippedMembers"`
}
