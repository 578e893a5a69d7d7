// Package service is the registry's external call surface. It serializes every
// mutation, checks the operational flag first, routes the request to the
// consensus voter or funding gate, and appends the resulting event in the same
// ledger transaction.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"surety/internal/events"
	"surety/internal/surety/consensus"
	"surety/internal/surety/funding"
	"surety/internal/surety/metrics"
	"surety/internal/surety/models"
	"surety/internal/surety/opstatus"
	"surety/internal/surety/ports"
	"surety/internal/surety/registry"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
	"surety/pkg/requestcontext"
)

// DefaultFundingThreshold is the minimum contribution that funds an airline.
const DefaultFundingThreshold models.Amount = 10

const tracerName = "surety/internal/surety/service"

// Service implements registerAirline, fundAirline, setOperatingStatus and the
// read calls.
//
// mu is held for writing across each mutation (lock wait included), and for
// reading by queries, so reads never observe a half-applied call. sync.Mutex
// switches to FIFO hand-off under contention, which keeps callers from starving.
type Service struct {
	mu sync.RWMutex

	ledger ports.Ledger
	status *opstatus.Controller
	events events.Log

	fundingThreshold   models.Amount
	consensusThreshold int

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	now       func() time.Time
	lastStamp time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock sets the source of transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithFundingThreshold(amount models.Amount) Option {
	return func(s *Service) {
		if amount > 0 {
			s.fundingThreshold = amount
		}
	}
}

func WithConsensusThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.consensusThreshold = n
		}
	}
}

func New(ledger ports.Ledger, status *opstatus.Controller, log events.Log, opts ...Option) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if status == nil {
		return nil, errors.New("operational status controller is required")
	}
	if log == nil {
		return nil, errors.New("event log is required")
	}
	s := &Service{
		ledger:             ledger,
		status:             status,
		events:             log,
		fundingThreshold:   DefaultFundingThreshold,
		consensusThreshold: consensus.DefaultThreshold,
		logger:             slog.New(slog.DiscardHandler),
		tracer:             otel.Tracer(tracerName),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) registry(ctx context.Context, store ports.Store) *registry.Registry {
	return registry.New(store, s.fundingThreshold, registry.WithClock(clock(ctx)))
}

func (s *Service) voter(ctx context.Context, reg *registry.Registry, store ports.Store) *consensus.Voter {
	return consensus.New(reg, store,
		consensus.WithThreshold(s.consensusThreshold),
		consensus.WithClock(clock(ctx)),
	)
}

// stamp pins the transaction time once the ledger lock is held. Stamps never
// go backwards, so event timestamps agree with sequence order even when a
// request that arrived earlier commits later. Callers hold mu.
func (s *Service) stamp(ctx context.Context) context.Context {
	t := s.now()
	if t.Before(s.lastStamp) {
		t = s.lastStamp
	}
	s.lastStamp = t
	return requestcontext.WithTime(ctx, t)
}

func clock(ctx context.Context) func() time.Time {
	return func() time.Time { return requestcontext.Now(ctx) }
}

// Bootstrap registers the genesis airline when the registry is empty. It is
// idempotent across restarts and is not gated by the operational flag.
func (s *Service) Bootstrap(ctx context.Context, genesis models.Address) error {
	if genesis.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "genesis airline is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var created bool
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, store ports.Store) error {
		ctx = s.stamp(ctx)
		reg := s.registry(ctx, store)
		n, err := reg.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if _, err := reg.Register(ctx, genesis); err != nil {
			return err
		}
		created = true
		return s.emit(ctx, events.AirlineRegistered(genesis, s.status.Owner(), requestcontext.Now(ctx)))
	})
	if err != nil {
		return err
	}
	if created {
		s.logAudit(ctx, string(events.KindAirlineRegistered), "airline", genesis, "genesis", true)
		s.setRegistered(1)
	}
	return nil
}

// IsOperational reports the global flag.
func (s *Service) IsOperational(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.IsOperational(ctx)
}

// SetOperatingStatus flips the flag. Only the owner may call it; it is the one
// mutator that still works while the flag is off.
func (s *Service) SetOperatingStatus(ctx context.Context, caller models.Address, operational bool) (*models.StatusResult, error) {
	ctx, span := s.tracer.Start(ctx, "SetOperatingStatus",
		trace.WithAttributes(attribute.String("caller", caller.String()), attribute.Bool("operational", operational)))
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var changed bool
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, _ ports.Store) error {
		ctx = s.stamp(ctx)
		var err error
		changed, err = s.status.Set(ctx, caller, operational)
		if err != nil || !changed {
			return err
		}
		return s.emit(ctx, events.OperatingStatusChanged(operational, caller, requestcontext.Now(ctx)))
	})
	s.observe(ctx, span, "set_operating_status", start, err)
	if err != nil {
		return nil, err
	}

	if changed {
		s.logAudit(ctx, string(events.KindOperatingStatusChanged), "operational", operational, "caller", caller)
		if s.metrics != nil {
			s.metrics.SetOperational(operational)
		}
	}
	return &models.StatusResult{Operational: operational, Changed: changed}, nil
}

// SetTestingMode toggles the testing flag; refused while not operational.
func (s *Service) SetTestingMode(ctx context.Context, caller models.Address, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.status.SetTestingMode(ctx, caller, enabled); err != nil {
		s.countRejection("set_testing_mode", err)
		return err
	}
	return nil
}

func (s *Service) TestingMode() bool {
	return s.status.TestingMode()
}

// RegisterAirline is a sponsorship by a funded airline. It either registers
// candidate, records a pending vote, or is rejected.
func (s *Service) RegisterAirline(ctx context.Context, sponsor, candidate models.Address) (*models.RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterAirline",
		trace.WithAttributes(attribute.String("sponsor", sponsor.String()), attribute.String("candidate", candidate.String())))
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.RegistrationResult
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, store ports.Store) error {
		ctx = s.stamp(ctx)
		if err := s.status.Require(ctx); err != nil {
			return err
		}
		if candidate.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "candidate address is required")
		}
		reg := s.registry(ctx, store)
		decision, err := s.voter(ctx, reg, store).Sponsor(ctx, sponsor, candidate)
		if err != nil {
			return err
		}
		result = decision.Result
		if !result.IsRegistered() {
			return nil
		}
		return s.emit(ctx, events.AirlineRegistered(candidate, sponsor, requestcontext.Now(ctx)))
	})
	s.observe(ctx, span, "register_airline", start, err)
	if err != nil {
		return nil, err
	}

	if result.Consensus && s.metrics != nil {
		s.metrics.IncVote(result.VoteAdded)
	}
	if result.IsRegistered() {
		s.logAudit(ctx, string(events.KindAirlineRegistered),
			"airline", candidate,
			"sponsor", sponsor,
			"consensus", result.Consensus,
			"votes", result.Votes,
		)
		if s.metrics != nil {
			s.metrics.IncRegistration(result.Consensus)
		}
		s.setRegistered(result.Registered)
	} else {
		s.logger.InfoContext(ctx, "registration vote recorded",
			"candidate", candidate,
			"sponsor", sponsor,
			"votes", result.Votes,
			"vote_added", result.VoteAdded,
			"registered_count", result.Registered,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return &result, nil
}

// FundAirline accepts a funding payment from caller on behalf of airline.
func (s *Service) FundAirline(ctx context.Context, caller, airline models.Address, amount models.Amount) (*models.FundingResult, error) {
	ctx, span := s.tracer.Start(ctx, "FundAirline",
		trace.WithAttributes(
			attribute.String("caller", caller.String()),
			attribute.String("airline", airline.String()),
			attribute.String("amount", strconv.FormatUint(uint64(amount), 10)),
		))
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ledger.RunInTx(ctx, func(ctx context.Context, store ports.Store) error {
		ctx = s.stamp(ctx)
		if err := s.status.Require(ctx); err != nil {
			return err
		}
		if airline.IsZero() || caller.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "airline and caller addresses are required")
		}
		if amount > models.MaxAmount {
			return dErrors.New(dErrors.CodeValidation, "amount exceeds the ledger range")
		}
		gate := funding.New(s.registry(ctx, store), store, funding.WithClock(clock(ctx)))
		if _, err := gate.Fund(ctx, funding.Request{Airline: airline, Caller: caller, Amount: amount}); err != nil {
			return err
		}
		return s.emit(ctx, events.AirlineFunded(airline, caller, amount, requestcontext.Now(ctx)))
	})
	s.observe(ctx, span, "fund_airline", start, err)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, string(events.KindAirlineFunded), "airline", airline, "funder", caller, "amount", uint64(amount))
	if s.metrics != nil {
		s.metrics.ObserveFunding(uint64(amount))
	}
	return &models.FundingResult{Airline: airline, Funder: caller, Amount: amount}, nil
}

func (s *Service) IsAirlineRegistered(ctx context.Context, addr models.Address) (bool, error) {
	airline, err := s.Airline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.IsRegistered(), nil
}

func (s *Service) IsAirlineFunded(ctx context.Context, addr models.Address) (bool, error) {
	airline, err := s.Airline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.IsFunded(), nil
}

// RegisteredAirlineCount never decreases.
func (s *Service) RegisteredAirlineCount(ctx context.Context) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.ledger.View(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		n, err = s.registry(ctx, store).Count(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// Airline returns the record for addr; unknown addresses are Unregistered.
func (s *Service) Airline(ctx context.Context, addr models.Address) (*models.Airline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var airline *models.Airline
	err := s.ledger.View(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		airline, err = s.registry(ctx, store).Lookup(ctx, addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return airline, nil
}

// Proposal returns candidate's pending proposal. It fails with a CodeNotFound
// error when no vote is pending.
func (s *Service) Proposal(ctx context.Context, candidate models.Address) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var proposal *models.Proposal
	err := s.ledger.View(ctx, func(ctx context.Context, store ports.Store) error {
		reg := s.registry(ctx, store)
		var err error
		proposal, err = s.voter(ctx, reg, store).Pending(ctx, candidate)
		return err
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no pending proposal for candidate")
	}
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Contributions lists accepted funding payments for airline.
func (s *Service) Contributions(ctx context.Context, airline models.Address) ([]models.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Contribution
	err := s.ledger.View(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		list, err = funding.New(s.registry(ctx, store), store).Contributions(ctx, airline)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Events pages through the log after the given sequence.
func (s *Service) Events(ctx context.Context, after uint64, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.events.List(ctx, after, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events")
	}
	return list, nil
}

// Thresholds returns the funding amount and registry size rules in force.
func (s *Service) Thresholds() (models.Amount, int) {
	return s.fundingThreshold, s.consensusThreshold
}

func (s *Service) emit(ctx context.Context, event events.Event) error {
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.events.Append(ctx, &event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append event")
	}
	return nil
}

func (s *Service) observe(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveLatency(operation, time.Since(start))
	}
	if err == nil {
		return
	}
	if reason, ok := models.ReasonOf(err); ok {
		span.SetAttributes(attribute.String("rejection", string(reason)))
		s.logger.InfoContext(ctx, "request rejected",
			"operation", operation,
			"reason", string(reason),
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "request failed",
			"operation", operation,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	s.countRejection(operation, err)
}

func (s *Service) countRejection(operation string, err error) {
	if s.metrics == nil {
		return
	}
	reason := string(dErrors.CodeOf(err))
	if r, ok := models.ReasonOf(err); ok {
		reason = string(r)
	}
	s.metrics.IncRejection(operation, reason)
}

func (s *Service) setRegistered(n int) {
	if s.metrics != nil {
		s.metrics.SetRegisteredAirlines(n)
	}
}

// logAudit writes a state transition to the structured log.
func (s *Service) logAudit(ctx context.Context, event string, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
