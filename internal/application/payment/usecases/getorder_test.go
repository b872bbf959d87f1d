package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/application/payment/testutil"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
)

func TestGetOrder(t *testing.T) {
	env := newActionEnv()
	testutil.SeedAuthorizedOrder(env.repo, "uuid-1", "1001", "50.00")
	release := newReleaseUseCase(env, newFakeActionResource("release-1"))
	require.True(t, release.Execute(context.Background(), releaseCmd("12.34")).Success)

	uc := NewGetOrderUseCase(env.repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), "uuid-1")
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", got.UUID)
	assert.Equal(t, "1001", got.Number)
	assert.Equal(t, "37.66", got.AuthAmount)
	assert.Equal(t, "12.34", got.ReleasedAmount)
	assert.Equal(t, "in_process", got.OrderStatus)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "DoRelease", got.Transactions[0].Action)
	assert.Equal(t, "12.34", got.Transactions[0].Amount)

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}
