package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/cricsight/cricsight/internal/usecase"
)

func (h *Handler) GetSessionFilter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSessionFilter")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, filterStateToDTO(ctx, h.session.Filter()))
}

// SaveSessionFilter records the selection and lets the debounce window decide
// when the recomputation pass actually runs. The response carries the state
// as accepted, not the recomputed views.
func (h *Handler) SaveSessionFilter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSessionFilter")
	defer span.End()

	var req sessionFilterRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := filterStateFromRequest(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.session.SetFilter(ctx, state)
	writeSuccess(ctx, w, http.StatusAccepted, filterStateToDTO(ctx, state))
}

// ApplySessionFilter bypasses the debounce window. An empty body re-applies
// the session's current selection; a body replaces it first.
func (h *Handler) ApplySessionFilter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplySessionFilter")
	defer span.End()

	state := h.session.Filter()

	var req sessionFilterRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	switch {
	case err == nil:
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
		state, err = filterStateFromRequest(req)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
	case errors.Is(err, io.EOF):
		// No body: apply the filter as last saved.
	default:
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	dashboard, err := h.session.ApplyNow(ctx, state)
	if err != nil {
		h.logger.ErrorContext(ctx, "apply filter failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(ctx, dashboard))
}
