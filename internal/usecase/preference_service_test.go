package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/domain/preference"
	"github.com/riskibarqy/cricket-league/internal/infrastructure/repository/memory"
	preferencemock "github.com/riskibarqy/cricket-league/internal/mocks/domain/preference"
)

func TestPreferenceService_FavoriteTeamLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewPreferenceService(memory.NewPreferenceStore(), nil)

	_, err := svc.FavoriteTeam(ctx, "visitor-1")
	assert.True(t, errors.Is(err, ErrNotFound))

	brand, err := svc.SetFavoriteTeam(ctx, "visitor-1", "thunder titans")
	require.NoError(t, err)
	assert.Equal(t, "TT", brand.ShortName)

	got, err := svc.FavoriteTeam(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "Thunder Titans", got.Name)
	assert.Equal(t, "#7c3aed", got.Color)

	require.NoError(t, svc.ClearFavoriteTeam(ctx, "visitor-1"))
	_, err = svc.FavoriteTeam(ctx, "visitor-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPreferenceService_RejectsUnknownTeamAndBadVisitor(t *testing.T) {
	ctx := context.Background()
	svc := NewPreferenceService(memory.NewPreferenceStore(), nil)

	_, err := svc.SetFavoriteTeam(ctx, "visitor-1", "Mumbai")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	for _, visitor := range []string{"", "   ", strings.Repeat("x", 65), "tab\tid"} {
		_, err := svc.SetFavoriteTeam(ctx, visitor, "FC")
		assert.True(t, errors.Is(err, ErrInvalidInput), "visitor %q", visitor)
	}
}

func TestPreferenceService_StaleStoredCode(t *testing.T) {
	store := preferencemock.NewStore(t)
	store.On("Get", mock.Anything, "visitor-1", preference.KeyFavoriteTeam).Return("XX", true, nil).Once()

	_, err := NewPreferenceService(store, nil).FavoriteTeam(context.Background(), "visitor-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPreferenceService_StoreErrorsPropagate(t *testing.T) {
	store := preferencemock.NewStore(t)
	store.On("Set", mock.Anything, "visitor-1", preference.KeyFavoriteTeam, "RR").Return(errors.New("redis down")).Once()

	_, err := NewPreferenceService(store, nil).SetFavoriteTeam(context.Background(), "visitor-1", "RR")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}
