package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/domain"
)

func TestFavoritesToggle(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoritesService(newDocStore(t), nil)
	movie := domain.Title{ID: 42, Type: domain.MediaTypeMovie, Name: "기생충"}

	added, err := svc.Toggle(ctx, "u1", movie)
	require.NoError(t, err)
	assert.True(t, added)

	favs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "기생충", favs[0].Name)
	assert.False(t, favs[0].AddedAt.IsZero())

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	added, err = svc.Toggle(ctx, "u1", movie)
	require.NoError(t, err)
	assert.False(t, added)

	liked, err := svc.IsFavorite(ctx, "u1", 42)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestFavoritesWithoutDocStore(t *testing.T) {
	svc := NewFavoritesService(nil, nil)

	_, err := svc.Toggle(context.Background(), "u1", domain.Title{ID: 1})
	assert.ErrorIs(t, err, domain.ErrDocStoreUnavailable)
	_, err = svc.List(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrDocStoreUnavailable)
}
