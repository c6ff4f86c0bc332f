package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cricsight/cricsight/internal/domain/series"
	"github.com/cricsight/cricsight/internal/usecase"
)

type Handler struct {
	session   *usecase.SessionService
	series    series.Mapping
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHandler(
	session *usecase.SessionService,
	mapping series.Mapping,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		session:   session,
		series:    mapping,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeries")
	defer span.End()

	codes := h.series.Codes()
	items := make([]seriesDTO, 0, len(codes))
	for _, code := range codes {
		items = append(items, seriesDTO{
			Code:     code,
			RawNames: h.series.RawNames(code),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.session.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(ctx, dashboard))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	dashboard, err := h.session.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(dashboard.Matches))
	for _, m := range dashboard.Matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboards")
	defer span.End()

	dashboard, err := h.session.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaderboards failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardDTO, 0, len(dashboard.Leaderboards))
	for _, board := range dashboard.Leaderboards {
		items = append(items, leaderboardToDTO(ctx, board))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamReport")
	defer span.End()

	dashboard, err := h.session.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamReportToDTO(ctx, dashboard.Team))
}
