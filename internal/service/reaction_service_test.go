package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleReactionLifecycle(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)
	post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Reactable", Body: "b"})
	viewer := viewerFor(2)

	result, err := svcs.reaction.ToggleReaction(ctx, viewer, post.ID, &dto.ReactionToggleDTO{ReactionType: "LIKE"})
	require.NoError(t, err)
	assert.Equal(t, ReactionActionAdded, result.Action)
	assert.Equal(t, "LIKE", result.Reaction)
	assert.Equal(t, int64(1), result.Summary.Total)
	assert.Equal(t, "LIKE", result.Summary.UserReaction)

	// 异类型表态改写既有记录，总数不变
	result, err = svcs.reaction.ToggleReaction(ctx, viewer, post.ID, &dto.ReactionToggleDTO{ReactionType: "LOVE"})
	require.NoError(t, err)
	assert.Equal(t, ReactionActionChanged, result.Action)
	assert.Equal(t, "LOVE", result.Reaction)
	assert.Equal(t, int64(1), result.Summary.Total)
	assert.Equal(t, "LOVE", result.Summary.UserReaction)

	// 同类型表态是撤销
	result, err = svcs.reaction.ToggleReaction(ctx, viewer, post.ID, &dto.ReactionToggleDTO{ReactionType: "LOVE"})
	require.NoError(t, err)
	assert.Equal(t, ReactionActionRemoved, result.Action)
	assert.Empty(t, result.Reaction)
	assert.Equal(t, int64(0), result.Summary.Total)
	assert.Empty(t, result.Summary.UserReaction)
}

func TestToggleReactionValidation(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)
	post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Reactable", Body: "b"})

	_, err := svcs.reaction.ToggleReaction(ctx, model.Anonymous(), post.ID, &dto.ReactionToggleDTO{ReactionType: "LIKE"})
	assert.ErrorIs(t, err, UnauthorizedError)

	_, err = svcs.reaction.ToggleReaction(ctx, viewerFor(2), post.ID, &dto.ReactionToggleDTO{ReactionType: "MEH"})
	assert.ErrorIs(t, err, ErrReactionInvalid)

	private := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Hidden", Body: "b", Visibility: model.VisibilityPrivate})
	_, err = svcs.reaction.ToggleReaction(ctx, viewerFor(2), private.ID, &dto.ReactionToggleDTO{ReactionType: "LIKE"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestReactionSummaryCounts(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)
	post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Popular", Body: "b"})

	_, err := svcs.reaction.ToggleReaction(ctx, viewerFor(2), post.ID, &dto.ReactionToggleDTO{ReactionType: "LIKE"})
	require.NoError(t, err)
	_, err = svcs.reaction.ToggleReaction(ctx, viewerFor(3), post.ID, &dto.ReactionToggleDTO{ReactionType: "LIKE"})
	require.NoError(t, err)
	_, err = svcs.reaction.ToggleReaction(ctx, viewerFor(4), post.ID, &dto.ReactionToggleDTO{ReactionType: "WOW"})
	require.NoError(t, err)

	summary, err := svcs.reaction.GetSummary(ctx, viewerFor(3), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, "LIKE", summary.UserReaction)

	byType := make(map[string]*dto.ReactionCountDTO, len(summary.Counts))
	for _, c := range summary.Counts {
		byType[c.ReactionType] = c
	}
	require.Contains(t, byType, "LIKE")
	require.Contains(t, byType, "WOW")
	assert.Equal(t, int64(2), byType["LIKE"].Count)
	assert.Equal(t, int64(1), byType["WOW"].Count)
	assert.Equal(t, "👍", byType["LIKE"].Emoji)

	// 匿名读者拿不到 user_reaction
	summary, err = svcs.reaction.GetSummary(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.UserReaction)
}
