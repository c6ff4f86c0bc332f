package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	dashboard, err := h.session.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerSummaryDTO, 0, len(dashboard.Players))
	for _, p := range dashboard.Players {
		items = append(items, playerToSummaryDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	view, err := h.session.PlayerDetail(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDetailDTO(ctx, view))
}
