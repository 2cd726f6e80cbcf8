package services

import (
	"context"
	"testing"
	"time"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newShippingService() (*MockShippingRepository, ShippingService) {
	repo := new(MockShippingRepository)
	return repo, NewShippingService(repo, common.NewValidator(), zap.NewNop())
}

func validShippingRequest() *models.CreateShippingRequest {
	charge := 4.5
	return &models.CreateShippingRequest{
		OrderID:     uuid.NewString(),
		Charge:      &charge,
		Ward:        "Ward 3",
		District:    "District 10",
		City:        "Ho Chi Minh City",
		PhoneNumber: "0901234567",
	}
}

func TestShippingService_Create(t *testing.T) {
	repo, svc := newShippingService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Shipping")).Return(nil)

	req := validShippingRequest()
	date := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	req.ShippingDate = &date

	shipping, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ShippingStateNone, shipping.ShippingState)
	assert.Equal(t, 4.5, shipping.Charge)
	assert.Equal(t, date, shipping.ShippingDate)
	assert.Equal(t, req.OrderID, shipping.OrderID.String())
}

func TestShippingService_CreateRequiresFields(t *testing.T) {
	repo, svc := newShippingService()

	_, err := svc.Create(context.Background(), &models.CreateShippingRequest{OrderID: uuid.NewString()})
	require.Error(t, err)
	assert.Equal(t, common.KindInvalidInput, common.KindOf(err))

	details := common.DetailsOf(err)
	for _, field := range []string{"charge", "ward", "district", "city", "phone_number"} {
		assert.Contains(t, details, field)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShippingService_ZeroChargeIsAccepted(t *testing.T) {
	repo, svc := newShippingService()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validShippingRequest()
	zero := 0.0
	req.Charge = &zero

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestShippingService_UpdateState(t *testing.T) {
	repo, svc := newShippingService()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Shipping{ID: id, ShippingState: models.ShippingStatePending}, nil)
	repo.On("UpdateState", mock.Anything, id, models.ShippingStatePending, models.ShippingStateShipped).Return(nil)

	shipping, err := svc.UpdateState(context.Background(), id, models.ShippingStateShipped)
	require.NoError(t, err)
	assert.Equal(t, models.ShippingStateShipped, shipping.ShippingState)
}

func TestShippingService_UpdateStateRejectsSkippingSteps(t *testing.T) {
	repo, svc := newShippingService()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Shipping{ID: id, ShippingState: models.ShippingStateNone}, nil)

	_, err := svc.UpdateState(context.Background(), id, models.ShippingStateDelivered)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
	repo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShippingService_UpdateStateUnknown(t *testing.T) {
	_, svc := newShippingService()

	_, err := svc.UpdateState(context.Background(), uuid.New(), models.ShippingState("lost"))
	assert.Equal(t, common.KindInvalidInput, common.KindOf(err))
}

func TestShippingService_UpdateStateConcurrentChange(t *testing.T) {
	repo, svc := newShippingService()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Shipping{ID: id, ShippingState: models.ShippingStateShipped}, nil)
	repo.On("UpdateState", mock.Anything, id, models.ShippingStateShipped, models.ShippingStateCancelled).Return(repositories.ErrStaleState)

	_, err := svc.UpdateState(context.Background(), id, models.ShippingStateCancelled)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
}

func TestShippingState_Transitions(t *testing.T) {
	assert.True(t, models.ShippingStateNone.CanTransitionTo(models.ShippingStatePending))
	assert.True(t, models.ShippingStatePending.CanTransitionTo(models.ShippingStateCancelled))
	assert.False(t, models.ShippingStateDelivered.CanTransitionTo(models.ShippingStateCancelled))
	assert.False(t, models.ShippingStateCancelled.CanTransitionTo(models.ShippingStatePending))
	assert.False(t, models.ShippingStateShipped.CanTransitionTo(models.ShippingStatePending))
}
