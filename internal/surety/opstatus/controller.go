// Package opstatus holds the global operational flag. When the flag is off,
// every mutating entry point refuses work before doing any other validation.
//
// Only the designated owner may flip the flag; no vote is involved.
package opstatus

import (
	"context"
	"errors"
	"sync/atomic"

	"surety/internal/surety/models"
	dErrors "surety/pkg/domain-errors"
)

// Store persists the flag. Load reports enabled=true when nothing was saved.
type Store interface {
	Load(ctx context.Context) (bool, error)
	Save(ctx context.Context, operational bool) error
}

// Controller gates mutations on the operational flag.
type Controller struct {
	owner       models.Address
	store       Store
	testingMode atomic.Bool
}

func New(owner models.Address, store Store) (*Controller, error) {
	if owner.IsZero() {
		return nil, errors.New("operational status owner is required")
	}
	if store == nil {
		return nil, errors.New("operational status store is required")
	}
	return &Controller{owner: owner, store: store}, nil
}

// Owner is the only identity allowed to change the flag.
func (c *Controller) Owner() models.Address {
	return c.owner
}

func (c *Controller) IsOperational(ctx context.Context) (bool, error) {
	ok, err := c.store.Load(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load operational status")
	}
	return ok, nil
}

// Require returns ErrOperationalStatusDisabled while the flag is off.
func (c *Controller) Require(ctx context.Context) error {
	ok, err := c.IsOperational(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrOperationalStatusDisabled
	}
	return nil
}

// Authorize rejects every caller except the owner.
func (c *Controller) Authorize(caller models.Address) error {
	if caller != c.owner {
		return models.ErrUnauthorized
	}
	return nil
}

// Set stores the flag for the owner. changed is false when the flag already
// had the requested value; nothing is written in that case.
func (c *Controller) Set(ctx context.Context, caller models.Address, operational bool) (changed bool, err error) {
	if err := c.Authorize(caller); err != nil {
		return false, err
	}
	current, err := c.IsOperational(ctx)
	if err != nil {
		return false, err
	}
	if current == operational {
		return false, nil
	}
	if err := c.store.Save(ctx, operational); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save operational status")
	}
	return true, nil
}

// SetTestingMode toggles the process-local testing flag. It is owner-only and,
// like any mutator, refused while the contract is not operational.
func (c *Controller) SetTestingMode(ctx context.Context, caller models.Address, enabled bool) error {
	if err := c.Require(ctx); err != nil {
		return err
	}
	if err := c.Authorize(caller); err != nil {
		return err
	}
	c.testingMode.Store(enabled)
	return nil
}

func (c *Controller) TestingMode() bool {
	return c.testingMode.Load()
}
