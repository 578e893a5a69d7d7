package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"surety/internal/events"
	"surety/internal/platform/middleware"
	"surety/internal/surety/models"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/httputil"
)

// Service is the registry facade the handler drives.
type Service interface {
	IsOperational(ctx context.Context) (bool, error)
	SetOperatingStatus(ctx context.Context, caller models.Address, operational bool) (*models.StatusResult, error)
	SetTestingMode(ctx context.Context, caller models.Address, enabled bool) error
	TestingMode() bool
	RegisterAirline(ctx context.Context, sponsor, candidate models.Address) (*models.RegistrationResult, error)
	FundAirline(ctx context.Context, caller, airline models.Address, amount models.Amount) (*models.FundingResult, error)
	RegisteredAirlineCount(ctx context.Context) (uint32, error)
	Airline(ctx context.Context, addr models.Address) (*models.Airline, error)
	Proposal(ctx context.Context, candidate models.Address) (*models.Proposal, error)
	Contributions(ctx context.Context, airline models.Address) ([]models.Contribution, error)
	Events(ctx context.Context, after uint64, limit int) ([]events.Event, error)
}

// Handler exposes the registry over HTTP. Reads are public; mutations need a
// caller token.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.CallerValidator
	limit     func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithMutationLimit runs mw on every authenticated route, after the caller is known.
func WithMutationLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.limit = mw
	}
}

func New(service Service, validator middleware.CallerValidator, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{service: service, validator: validator, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the registry routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)

		r.Get("/operational", h.handleGetStatus)
		r.Get("/airlines/count", h.handleCount)
		r.Get("/airlines/{address}", h.handleGetAirline)
		r.Get("/airlines/{address}/proposal", h.handleGetProposal)
		r.Get("/airlines/{address}/contributions", h.handleGetContributions)
		r.Get("/events", h.handleListEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCaller(h.validator, h.logger))
			if h.limit != nil {
				r.Use(h.limit)
			}
			r.Put("/operational", h.handleSetStatus)
			r.Put("/testing-mode", h.handleSetTestingMode)
			r.Post("/airlines", h.handleRegisterAirline)
			r.Post("/airlines/{address}/funding", h.handleFundAirline)
		})
	})
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ok, err := h.service.IsOperational(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to read operational status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Operational: ok, TestingMode: h.service.TestingMode()})
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req setStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid set status request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid set status request", err)
		return
	}

	res, err := h.service.SetOperatingStatus(ctx, middleware.GetCaller(ctx), *req.Operational)
	if err != nil {
		h.fail(ctx, w, "set operating status refused", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleSetTestingMode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req setTestingModeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid testing mode request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid testing mode request", err)
		return
	}

	if err := h.service.SetTestingMode(ctx, middleware.GetCaller(ctx), *req.Enabled); err != nil {
		h.fail(ctx, w, "set testing mode refused", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRegisterAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req registerAirlineRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid register airline request", err)
		return
	}
	candidate, err := req.Normalize()
	if err != nil {
		h.fail(ctx, w, "invalid register airline request", err)
		return
	}

	res, err := h.service.RegisterAirline(ctx, middleware.GetCaller(ctx), candidate)
	if err != nil {
		h.fail(ctx, w, "register airline refused", err)
		return
	}
	status := http.StatusCreated
	if !res.IsRegistered() {
		status = http.StatusAccepted
	}
	httputil.WriteJSON(w, status, res)
}

func (h *Handler) handleFundAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	airline, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "invalid fund airline request", err)
		return
	}
	var req fundAirlineRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid fund airline request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid fund airline request", err)
		return
	}

	res, err := h.service.FundAirline(ctx, middleware.GetCaller(ctx), airline, models.Amount(req.Amount))
	if err != nil {
		h.fail(ctx, w, "fund airline refused", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.service.RegisteredAirlineCount(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to count airlines", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, countResponse{RegisteredCount: n})
}

func (h *Handler) handleGetAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "invalid airline address", err)
		return
	}
	airline, err := h.service.Airline(ctx, addr)
	if err != nil {
		h.fail(ctx, w, "failed to load airline", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, airlineResponse{
		Airline:    airline,
		Registered: airline.IsRegistered(),
		Funded:     airline.IsFunded(),
	})
}

func (h *Handler) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidate, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "invalid candidate address", err)
		return
	}
	p, err := h.service.Proposal(ctx, candidate)
	if err != nil {
		h.fail(ctx, w, "failed to load proposal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProposalResponse(p))
}

func (h *Handler) handleGetContributions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	airline, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "invalid airline address", err)
		return
	}
	list, err := h.service.Contributions(ctx, airline)
	if err != nil {
		h.fail(ctx, w, "failed to list contributions", err)
		return
	}
	if list == nil {
		list = []models.Contribution{}
	}
	httputil.WriteJSON(w, http.StatusOK, contributionsResponse{Airline: airline, Contributions: list})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	after, limit, err := parsePage(r)
	if err != nil {
		h.fail(ctx, w, "invalid events query", err)
		return
	}
	list, err := h.service.Events(ctx, after, limit)
	if err != nil {
		h.fail(ctx, w, "failed to list events", err)
		return
	}
	next := after
	if n := len(list); n > 0 {
		next = list[n-1].Sequence
	}
	httputil.WriteJSON(w, http.StatusOK, eventsResponse{Events: list, Next: next})
}

func parsePage(r *http.Request) (uint64, int, error) {
	q := r.URL.Query()
	var after uint64
	if raw := q.Get("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeValidation, "after must be a non-negative integer")
		}
		after = v
	}
	limit := events.DefaultListLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer")
		}
		limit = events.ClampLimit(v)
	}
	return after, limit, nil
}

// fail logs at a level matching the error kind and writes the response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"error", err.Error(), "request_id", middleware.GetRequestID(ctx)}
	switch {
	case models.IsRejection(err):
		h.logger.InfoContext(ctx, msg, attrs...)
	case dErrors.CodeOf(err) == dErrors.CodeInternal:
		h.logger.ErrorContext(ctx, msg, attrs...)
	default:
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	writeError(w, err)
}
