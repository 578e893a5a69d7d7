package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"surety/internal/surety/models"
	"surety/internal/surety/ports"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/sentinel"
)

// state is the full registry snapshot held by the in-memory ledger.
type state struct {
	airlines      map[models.Address]models.Airline
	proposals     map[models.Address]*models.Proposal
	contributions map[models.Address][]models.Contribution
}

func newState() *state {
	return &state{
		airlines:      make(map[models.Address]models.Airline),
		proposals:     make(map[models.Address]*models.Proposal),
		contributions: make(map[models.Address][]models.Contribution),
	}
}

func (s *state) clone() *state {
	cp := &state{
		airlines:      maps.Clone(s.airlines),
		proposals:     make(map[models.Address]*models.Proposal, len(s.proposals)),
		contributions: make(map[models.Address][]models.Contribution, len(s.contributions)),
	}
	for k, p := range s.proposals {
		cp.proposals[k] = p.Clone()
	}
	for k, c := range s.contributions {
		cp.contributions[k] = slices.Clone(c)
	}
	return cp
}

// MemoryLedger keeps registry state in process. Transactions stage writes on a
// copy of the committed state and swap it in only when fn succeeds, so a
// rejected call leaves nothing behind.
type MemoryLedger struct {
	mu        sync.RWMutex
	committed *state
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{committed: newState()}
}

func (l *MemoryLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	staged := l.committed.clone()
	if err := fn(ctx, &memoryStore{st: staged}); err != nil {
		return err
	}
	l.committed = staged
	return nil
}

func (l *MemoryLedger) View(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(ctx, &memoryStore{st: l.committed, readOnly: true})
}

// memoryStore is only valid inside RunInTx/View, which hold the ledger lock.
type memoryStore struct {
	st       *state
	readOnly bool
}

var errReadOnly = dErrors.New(dErrors.CodeInternal, "write attempted in read-only view")

func (m *memoryStore) GetAirline(_ context.Context, addr models.Address) (*models.Airline, error) {
	a, ok := m.st.airlines[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

func (m *memoryStore) SaveAirline(_ context.Context, airline *models.Airline) error {
	if m.readOnly {
		return errReadOnly
	}
	m.st.airlines[airline.Address] = *airline
	return nil
}

func (m *memoryStore) CountRegistered(_ context.Context) (int, error) {
	n := 0
	for _, a := range m.st.airlines {
		if a.IsRegistered() {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) GetProposal(_ context.Context, candidate models.Address) (*models.Proposal, error) {
	p, ok := m.st.proposals[candidate]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *memoryStore) SaveProposal(_ context.Context, proposal *models.Proposal) error {
	if m.readOnly {
		return errReadOnly
	}
	m.st.proposals[proposal.Candidate] = proposal.Clone()
	return nil
}

func (m *memoryStore) DeleteProposal(_ context.Context, candidate models.Address) error {
	if m.readOnly {
		return errReadOnly
	}
	delete(m.st.proposals, candidate)
	return nil
}

func (m *memoryStore) AddContribution(_ context.Context, c models.Contribution) error {
	if m.readOnly {
		return errReadOnly
	}
	m.st.contributions[c.Airline] = append(m.st.contributions[c.Airline], c)
	return nil
}

func (m *memoryStore) ListContributions(_ context.Context, airline models.Address) ([]models.Contribution, error) {
	return append([]models.Contribution{}, m.st.contributions[airline]...), nil
}
