package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func TestStatsService(t *testing.T) {
	repo := new(MockStatsRepository)
	svc := NewStatsService(repo)
	ctx := context.Background()

	users := []*domain.UserActivityStat{{UserID: 1, Username: "ironman", Activities: 1, Calories: 600}}
	repo.On("GetUserActivityStats", mock.Anything).Return(users, nil).Once()
	repo.On("GetActivityTypeStats", mock.Anything).Return(nil, errors.New("db down")).Once()

	got, err := svc.GetUserActivityStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	_, err = svc.GetActivityTypeStats(ctx)
	assert.ErrorContains(t, err, "activity type stats: db down")
	repo.AssertExpectations(t)
}
