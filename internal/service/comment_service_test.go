package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/blogconf"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMeta = ClientMeta{IPAddress: "203.0.113.7", UserAgent: "go-test"}

func commentableServices(t *testing.T, mutate func(*blogconf.Settings)) (*testServices, *dto.PostDTO) {
	t.Helper()
	svcs := newTestServices(t, mutate, nil)
	post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Discussion", Body: "b"})
	return svcs, post
}

func TestCommentModerationFlow(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, nil)

	// 默认开启审核，登录用户的评论也先进待审队列
	result, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID,
		Body:   "nice write-up",
	}, testMeta)
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Nil(t, result.Comment)
	require.NotZero(t, result.PendingID)

	// 审核前不对外可见
	comments, err := svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	pendings, err := svcs.comment.ListPending(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, pendings, 1)
	assert.Equal(t, "203.0.113.7", pendings[0].IPAddress)

	approved, err := svcs.comment.ApprovePending(ctx, 99, result.PendingID)
	require.NoError(t, err)
	assert.Equal(t, "nice write-up", approved.Body)
	assert.Equal(t, uint64(2), approved.AuthorID)

	comments, err = svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// 审核后待审记录即删除，重复审核按不存在处理
	var pendingRows int64
	require.NoError(t, svcs.db.Model(&model.PendingComment{}).Count(&pendingRows).Error)
	assert.EqualValues(t, 0, pendingRows)

	_, err = svcs.comment.ApprovePending(ctx, 99, result.PendingID)
	assert.ErrorIs(t, err, ErrPendingNotFound)
	err = svcs.comment.RejectPending(ctx, 99, result.PendingID, "late")
	assert.ErrorIs(t, err, ErrPendingNotFound)
}

func TestCommentRejectIsTerminal(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, nil)

	result, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID,
		Body:   "spam spam",
	}, testMeta)
	require.NoError(t, err)

	require.NoError(t, svcs.comment.RejectPending(ctx, 99, result.PendingID, "off topic"))

	// 驳回同样删除待审记录，不产生正式评论
	var pendingRows int64
	require.NoError(t, svcs.db.Model(&model.PendingComment{}).Count(&pendingRows).Error)
	assert.EqualValues(t, 0, pendingRows)

	_, err = svcs.comment.ApprovePending(ctx, 99, result.PendingID)
	assert.ErrorIs(t, err, ErrPendingNotFound)

	comments, err := svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentWithoutModeration(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.ModerateComments = false })

	result, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID,
		Body:   "instant",
	}, testMeta)
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	require.NotNil(t, result.Comment)

	count, err := svcs.comment.GetCommentCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAnonymousComments(t *testing.T) {
	ctx := context.Background()
	anon := model.Anonymous()

	t.Run("forbidden by default", func(t *testing.T) {
		svcs, post := commentableServices(t, nil)
		_, err := svcs.comment.CreateComment(ctx, anon, &dto.CommentCreateDTO{
			PostID:      post.ID,
			Body:        "hi",
			AuthorName:  "Visitor",
			AuthorEmail: "visitor@example.com",
		}, testMeta)
		assert.ErrorIs(t, err, ErrAnonymousForbidden)
	})

	t.Run("requires name and email", func(t *testing.T) {
		svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.AllowAnonymousComments = true })
		_, err := svcs.comment.CreateComment(ctx, anon, &dto.CommentCreateDTO{
			PostID:     post.ID,
			Body:       "hi",
			AuthorName: "Visitor",
		}, testMeta)
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("always queued even without moderation", func(t *testing.T) {
		svcs, post := commentableServices(t, func(s *blogconf.Settings) {
			s.AllowAnonymousComments = true
			s.ModerateComments = false
		})
		result, err := svcs.comment.CreateComment(ctx, anon, &dto.CommentCreateDTO{
			PostID:      post.ID,
			Body:        "hi there",
			AuthorName:  "Visitor",
			AuthorEmail: "visitor@example.com",
		}, testMeta)
		require.NoError(t, err)
		assert.Equal(t, "pending", result.Status)

		pendings, err := svcs.comment.ListPending(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, pendings, 1)
		assert.Nil(t, pendings[0].AuthorID)
		assert.Equal(t, "Visitor", pendings[0].AuthorName)
	})
}

func TestCommentReplyTree(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.ModerateComments = false })

	root, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "root",
	}, testMeta)
	require.NoError(t, err)

	reply, err := svcs.comment.CreateComment(ctx, viewerFor(3), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "reply", ParentID: &root.Comment.ID,
	}, testMeta)
	require.NoError(t, err)

	_, err = svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "nested", ParentID: &reply.Comment.ID,
	}, testMeta)
	require.NoError(t, err)

	tree, err := svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "root", tree[0].Body)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "reply", tree[0].Replies[0].Body)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested", tree[0].Replies[0].Replies[0].Body)

	// 回复必须挂在同一帖子的评论下
	other := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Other", Body: "b"})
	_, err = svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: other.ID, Body: "cross", ParentID: &root.Comment.ID,
	}, testMeta)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentEditHistory(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.ModerateComments = false })

	created, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "version one",
	}, testMeta)
	require.NoError(t, err)
	commentID := created.Comment.ID

	// 非作者不能编辑
	_, err = svcs.comment.UpdateComment(ctx, viewerFor(3), commentID, &dto.CommentUpdateDTO{Body: "hijack"})
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := svcs.comment.UpdateComment(ctx, viewerFor(2), commentID, &dto.CommentUpdateDTO{Body: "version two"})
	require.NoError(t, err)
	assert.Equal(t, "version two", updated.Body)
	assert.True(t, updated.IsEdited)
	assert.Equal(t, 1, updated.EditCount)

	updated, err = svcs.comment.UpdateComment(ctx, viewerFor(2), commentID, &dto.CommentUpdateDTO{Body: "version three"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.EditCount)

	// 历史只存旧版本
	history, err := svcs.comment.GetHistory(ctx, model.Anonymous(), commentID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	bodies := []string{history[0].Body, history[1].Body}
	assert.Contains(t, bodies, "version one")
	assert.Contains(t, bodies, "version two")
}

func TestCommentLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("max length", func(t *testing.T) {
		svcs, post := commentableServices(t, func(s *blogconf.Settings) {
			s.ModerateComments = false
			s.CommentMaxLength = 10
		})
		_, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
			PostID: post.ID, Body: strings.Repeat("x", 11),
		}, testMeta)
		assert.ErrorIs(t, err, ErrCommentTooLong)
	})

	t.Run("comments closed", func(t *testing.T) {
		svcs := newTestServices(t, nil, nil)
		post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{
			Title: "Closed", Body: "b", AllowComments: boolPtr(false),
		})
		_, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
			PostID: post.ID, Body: "hello",
		}, testMeta)
		assert.ErrorIs(t, err, ErrCommentClosed)
	})

	t.Run("invisible post", func(t *testing.T) {
		svcs := newTestServices(t, nil, nil)
		post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{
			Title: "Hidden", Body: "b", Visibility: model.VisibilityPrivate,
		})
		_, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
			PostID: post.ID, Body: "hello",
		}, testMeta)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestSetCommentApproved(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.ModerateComments = false })

	created, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "borderline",
	}, testMeta)
	require.NoError(t, err)
	commentID := created.Comment.ID

	// 下架后对外不可见
	require.NoError(t, svcs.comment.SetCommentApproved(ctx, 99, commentID, false))
	comments, err := svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// 可逆，重新上架即恢复
	require.NoError(t, svcs.comment.SetCommentApproved(ctx, 99, commentID, true))
	comments, err = svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	// 同态操作是幂等的
	require.NoError(t, svcs.comment.SetCommentApproved(ctx, 99, commentID, true))

	assert.ErrorIs(t, svcs.comment.SetCommentApproved(ctx, 99, 12345, false), ErrCommentNotFound)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	svcs, post := commentableServices(t, func(s *blogconf.Settings) { s.ModerateComments = false })

	created, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "fleeting",
	}, testMeta)
	require.NoError(t, err)
	commentID := created.Comment.ID

	assert.ErrorIs(t, svcs.comment.DeleteComment(ctx, viewerFor(3), commentID), UnauthorizedError)
	require.NoError(t, svcs.comment.DeleteComment(ctx, viewerFor(2), commentID))

	// 管理员可以下架任何人的评论
	other, err := svcs.comment.CreateComment(ctx, viewerFor(2), &dto.CommentCreateDTO{
		PostID: post.ID, Body: "also fleeting",
	}, testMeta)
	require.NoError(t, err)
	admin := model.Viewer{ID: 9, Roles: []string{"admin"}}
	require.NoError(t, svcs.comment.DeleteComment(ctx, admin, other.Comment.ID))

	comments, err := svcs.comment.ListComments(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// 已删评论不能再编辑
	_, err = svcs.comment.UpdateComment(ctx, viewerFor(2), commentID, &dto.CommentUpdateDTO{Body: "revive"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
