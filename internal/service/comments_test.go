package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/domain"
)

func TestCommentValidation(t *testing.T) {
	svc := NewCommentService(newDocStore(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CommentInput
		want error
	}{
		{"empty text", CommentInput{TitleID: 1, Text: ""}, domain.ErrEmptyComment},
		{"whitespace text", CommentInput{TitleID: 1, Text: "  \n"}, domain.ErrEmptyComment},
		{"negative rating", CommentInput{TitleID: 1, Text: "ok", Rating: -1}, domain.ErrInvalidRating},
		{"rating above ten", CommentInput{TitleID: 1, Text: "ok", Rating: 10.5}, domain.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	comments, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentAddAndList(t *testing.T) {
	svc := NewCommentService(newDocStore(t), nil)
	ctx := context.Background()

	c, err := svc.Add(ctx, CommentInput{TitleID: 5, UserID: "u1", UserName: "민지", Text: "  재밌어요 ", Rating: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "재밌어요", c.Text)
	assert.False(t, c.IsSpoiler)

	spoiler, err := svc.Add(ctx, CommentInput{TitleID: 5, UserID: "u2", Text: "결말이 충격적", Rating: 0})
	require.NoError(t, err)
	assert.True(t, spoiler.IsSpoiler)

	comments, err := svc.List(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestIsSpoiler(t *testing.T) {
	assert.True(t, IsSpoiler("스포 주의"))
	assert.True(t, IsSpoiler("마지막 장면이 최고"))
	assert.True(t, IsSpoiler("반전이 있어요"))
	assert.False(t, IsSpoiler("배우 연기가 좋아요"))
}

func TestCommentsWithoutDocStore(t *testing.T) {
	svc := NewCommentService(nil, nil)

	_, err := svc.Add(context.Background(), CommentInput{TitleID: 1, Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrDocStoreUnavailable)
	_, err = svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrDocStoreUnavailable)
}
