package opstatus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"surety/internal/surety/models"
	dErrors "surety/pkg/domain-errors"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (bool, error) { return false, errors.New("unreachable") }
func (failingStore) Save(context.Context, bool) error { return errors.New("unreachable") }

type ControllerSuite struct {
	suite.Suite
	owner      models.Address
	store      *MemoryStore
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.owner = models.MustAddress("0xowner")
	s.store = NewMemoryStore()
	var err error
	s.controller, err = New(s.owner, s.store)
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestNew() {
	s.Run("owner is required", func() {
		_, err := New("", s.store)
		s.ErrorContains(err, "owner is required")
	})

	s.Run("store is required", func() {
		_, err := New(s.owner, nil)
		s.ErrorContains(err, "store is required")
	})
}

func (s *ControllerSuite) TestDefaultsToOperational() {
	ok, err := s.controller.IsOperational(context.Background())
	s.Require().NoError(err)
	s.True(ok)
	s.NoError(s.controller.Require(context.Background()))
	s.Equal(s.owner, s.controller.Owner())
}

func (s *ControllerSuite) TestSet() {
	ctx := context.Background()

	s.Run("non-owner is unauthorized", func() {
		changed, err := s.controller.Set(ctx, models.MustAddress("0xother"), false)
		s.ErrorIs(err, models.ErrUnauthorized)
		s.False(changed)
	})

	s.Run("same value reports no change", func() {
		changed, err := s.controller.Set(ctx, s.owner, true)
		s.Require().NoError(err)
		s.False(changed)
	})

	s.Run("owner disables the flag", func() {
		changed, err := s.controller.Set(ctx, s.owner, false)
		s.Require().NoError(err)
		s.True(changed)
		s.ErrorIs(s.controller.Require(ctx), models.ErrOperationalStatusDisabled)
	})

	s.Run("owner can re-enable while disabled", func() {
		changed, err := s.controller.Set(ctx, s.owner, true)
		s.Require().NoError(err)
		s.True(changed)
	})
}

func (s *ControllerSuite) TestSetTestingMode() {
	ctx := context.Background()

	s.Run("non-owner is unauthorized", func() {
		err := s.controller.SetTestingMode(ctx, models.MustAddress("0xother"), true)
		s.ErrorIs(err, models.ErrUnauthorized)
	})

	s.Run("owner enables testing mode", func() {
		s.Require().NoError(s.controller.SetTestingMode(ctx, s.owner, true))
		s.True(s.controller.TestingMode())
	})

	s.Run("refused while disabled, even for the owner", func() {
		_, err := s.controller.Set(ctx, s.owner, false)
		s.Require().NoError(err)
		err = s.controller.SetTestingMode(ctx, s.owner, false)
		s.ErrorIs(err, models.ErrOperationalStatusDisabled)
		s.True(s.controller.TestingMode())
	})
}

func (s *ControllerSuite) TestStoreFailure() {
	c, err := New(s.owner, failingStore{})
	s.Require().NoError(err)

	err = c.Require(context.Background())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
