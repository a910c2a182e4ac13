//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-dashboard/internal/infra"
	"invoice-dashboard/internal/infra/db"
	"invoice-dashboard/internal/pkg/clock"
	"invoice-dashboard/internal/pkg/errs"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"
	"invoice-dashboard/tests/common/builder"
	commandsmock "invoice-dashboard/tests/mock/commands"
	sharedmock "invoice-dashboard/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InvoiceCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockTx       *sharedmock.MockTxRunner
	mockInvoices *commandsmock.MockInvoiceRepository
	mockListing  *commandsmock.MockListingInvalidator
	clk          *clock.MockClock
	commands     commands.InvoiceCommands
}

func (s *InvoiceCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTx = sharedmock.NewMockTxRunner(s.mockCtrl)
	s.mockInvoices = commandsmock.NewMockInvoiceRepository(s.mockCtrl)
	s.mockListing = commandsmock.NewMockListingInvalidator(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	s.commands = commands.NewInvoiceCommands(s.mockTx, s.mockInvoices, s.mockListing, s.clk)
}

func (s *InvoiceCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInvoiceCommandsSuite(t *testing.T) {
	suite.Run(t, new(InvoiceCommandsTestSuite))
}

// routes the transaction body straight through without a real database
func (s *InvoiceCommandsTestSuite) passthroughTx() {
	s.mockTx.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, db.DBTX) error) error {
			return fn(ctx, nil)
		}).Times(1)
}

func (s *InvoiceCommandsTestSuite) TestCreate() {
	draft, err := builder.NewInvoiceBuilder().BuildDraft()
	s.Require().NoError(err)

	s.Run("success: inserts, invalidates listing and points at it", func() {
		newID := uuid.New()
		s.passthroughTx()
		s.mockInvoices.EXPECT().Create(gomock.Any(), gomock.Any(), draft, s.clk.Now()).
			Return(newID, nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

		outcome, err := s.commands.Create(context.Background(), draft)
		s.Require().NoError(err)
		s.Equal(newID, outcome.InvoiceID)
		s.Equal(queries.ListingRoute, outcome.RedirectTo)
	})

	s.Run("error: insert failure skips invalidation", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Create(gomock.Any(), gomock.Any(), draft, s.clk.Now()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", errors.New("fk violation"))).Times(1)

		outcome, err := s.commands.Create(context.Background(), draft)
		s.Require().Error(err)
		s.Nil(outcome)
		s.True(errs.Is(err, commands.ErrInvoicePersist))
	})

	s.Run("success: invalidation failure does not fail the mutation", func() {
		newID := uuid.New()
		s.passthroughTx()
		s.mockInvoices.EXPECT().Create(gomock.Any(), gomock.Any(), draft, s.clk.Now()).
			Return(newID, nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).
			Return(errors.New("redis unreachable")).Times(1)

		outcome, err := s.commands.Create(context.Background(), draft)
		s.Require().NoError(err)
		s.Equal(newID, outcome.InvoiceID)
	})
}

func (s *InvoiceCommandsTestSuite) TestUpdate() {
	draft, err := builder.NewInvoiceBuilder().BuildDraft()
	s.Require().NoError(err)
	id := uuid.New()

	s.Run("success: updates and redirects to the listing", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Update(gomock.Any(), gomock.Any(), id, draft).
			Return(int64(1), nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

		outcome, err := s.commands.Update(context.Background(), id, draft)
		s.Require().NoError(err)
		s.Equal(id, outcome.InvoiceID)
		s.Equal(queries.ListingRoute, outcome.RedirectTo)
	})

	s.Run("success: zero affected rows is not a failure", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Update(gomock.Any(), gomock.Any(), id, draft).
			Return(int64(0), nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

		outcome, err := s.commands.Update(context.Background(), id, draft)
		s.Require().NoError(err)
		s.Equal(queries.ListingRoute, outcome.RedirectTo)
	})

	s.Run("error: update failure is marked as a persistence error", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Update(gomock.Any(), gomock.Any(), id, draft).
			Return(int64(0), infra.WrapRepoErr("update failed", errors.New("connection reset"))).Times(1)

		outcome, err := s.commands.Update(context.Background(), id, draft)
		s.Require().Error(err)
		s.Nil(outcome)
		s.True(errs.Is(err, commands.ErrInvoicePersist))
	})
}

func (s *InvoiceCommandsTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: deletes and invalidates without navigating", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Delete(gomock.Any(), gomock.Any(), id).
			Return(int64(1), nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

		s.Require().NoError(s.commands.Delete(context.Background(), id))
	})

	s.Run("success: deleting a missing row is idempotent", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Delete(gomock.Any(), gomock.Any(), id).
			Return(int64(0), nil).Times(1)
		s.mockListing.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

		s.Require().NoError(s.commands.Delete(context.Background(), id))
	})

	s.Run("error: delete failure is marked as a persistence error", func() {
		s.passthroughTx()
		s.mockInvoices.EXPECT().Delete(gomock.Any(), gomock.Any(), id).
			Return(int64(0), infra.WrapRepoErr("delete failed", errors.New("connection reset"))).Times(1)

		err := s.commands.Delete(context.Background(), id)
		s.Require().Error(err)
		s.True(errs.Is(err, commands.ErrInvoicePersist))
	})
}
