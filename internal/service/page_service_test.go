package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPage(t *testing.T, svc PageService, authorID uint64, req *dto.PageBaseDTO) *dto.PageInfoDTO {
	t.Helper()
	page, err := svc.CreatePage(context.Background(), viewerFor(authorID), req)
	require.NoError(t, err)
	return page
}

func TestCreatePageSlug(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	first := createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "About Me", Body: "hello"})
	assert.Equal(t, "about-me", first.Slug)
	assert.True(t, first.IsPublished)

	second := createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "About Me", Body: "hello again"})
	assert.Equal(t, "about-me-1", second.Slug)

	custom := createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "Contact", Slug: "reach-out", Body: "mail me"})
	assert.Equal(t, "reach-out", custom.Slug)

	_, err := svcs.page.CreatePage(ctx, model.Anonymous(), &dto.PageBaseDTO{Title: "Nope", Body: "b"})
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestUnpublishedPageVisibility(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	draft := createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{
		Title: "Work In Progress", Body: "soon", IsPublished: boolPtr(false),
	})

	_, err := svcs.page.GetPage(ctx, model.Anonymous(), draft.ID)
	assert.ErrorIs(t, err, ErrPageNotFound)
	_, err = svcs.page.GetPageBySlug(ctx, viewerFor(2), "work-in-progress")
	assert.ErrorIs(t, err, ErrPageNotFound)

	got, err := svcs.page.GetPage(ctx, viewerFor(1), draft.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "Published", Body: "live"})

	// 访客列表只含已发布页面
	pages, err := svcs.page.ListPages(ctx, model.Anonymous())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Published", pages[0].Title)

	pages, err = svcs.page.ListPages(ctx, viewerFor(1))
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestNavPagesOrdering(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "Links", Body: "b", ShowInNav: boolPtr(true), NavOrder: 2})
	createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "About", Body: "b", ShowInNav: boolPtr(true), NavOrder: 1})
	createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "Hidden", Body: "b"})
	createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{
		Title: "Secret Nav", Body: "b", ShowInNav: boolPtr(true), IsPublished: boolPtr(false),
	})

	nav, err := svcs.page.ListNavPages(ctx)
	require.NoError(t, err)
	require.Len(t, nav, 2)
	assert.Equal(t, "About", nav[0].Title)
	assert.Equal(t, "Links", nav[1].Title)
}

func TestPageOwnership(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	page := createTestPage(t, svcs.page, 1, &dto.PageBaseDTO{Title: "Mine", Body: "original"})

	_, err := svcs.page.UpdatePage(ctx, viewerFor(2), page.ID, &dto.PageBaseDTO{Title: "Stolen", Body: "x"})
	assert.ErrorIs(t, err, UnauthorizedError)
	assert.ErrorIs(t, svcs.page.DeletePage(ctx, viewerFor(2), page.ID), UnauthorizedError)

	updated, err := svcs.page.UpdatePage(ctx, viewerFor(1), page.ID, &dto.PageBaseDTO{Title: "Mine v2", Body: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Mine v2", updated.Title)
	// slug 不随标题变化
	assert.Equal(t, "mine", updated.Slug)

	require.NoError(t, svcs.page.DeletePage(ctx, viewerFor(1), page.ID))
	_, err = svcs.page.GetPage(ctx, viewerFor(1), page.ID)
	assert.ErrorIs(t, err, ErrPageNotFound)
}
