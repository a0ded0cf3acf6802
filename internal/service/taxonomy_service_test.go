package service

import (
	"Inkstone/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategorySlug(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	first, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Open Source"})
	require.NoError(t, err)
	assert.Equal(t, "open-source", first.Slug)
	assert.True(t, first.IsActive)

	// 同名分类的 slug 追加序号
	second, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Open Source"})
	require.NoError(t, err)
	assert.Equal(t, "open-source-1", second.Slug)

	got, err := svcs.taxonomy.GetCategoryBySlug(ctx, "open-source")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Orphan", ParentID: uintPtr(999)})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryCycleRejected(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	a, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "A"})
	require.NoError(t, err)
	b, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "B", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "C", ParentID: &b.ID})
	require.NoError(t, err)

	// 把祖先挂到自己的后代下面会成环
	_, err = svcs.taxonomy.UpdateCategory(ctx, a.ID, &dto.CategoryBaseDTO{Name: "A", ParentID: &c.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// 自己当自己的父级同理
	_, err = svcs.taxonomy.UpdateCategory(ctx, a.ID, &dto.CategoryBaseDTO{Name: "A", ParentID: &a.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// 合法的换挂不受影响
	updated, err := svcs.taxonomy.UpdateCategory(ctx, c.ID, &dto.CategoryBaseDTO{Name: "C", ParentID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *updated.ParentID)
}

func TestDeleteCategoryDetachesChildren(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	root, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Root"})
	require.NoError(t, err)
	middle, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Middle", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Leaf", ParentID: &middle.ID})
	require.NoError(t, err)

	require.NoError(t, svcs.taxonomy.DeleteCategory(ctx, middle.ID))

	// 子分类父引用置空，提升为根
	got, err := svcs.taxonomy.GetCategory(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	_, err = svcs.taxonomy.GetCategory(ctx, middle.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryTreeAndDescendants(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	root, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Tree Root"})
	require.NoError(t, err)
	childA, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Child A", ParentID: &root.ID})
	require.NoError(t, err)
	childB, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Child B", ParentID: &root.ID})
	require.NoError(t, err)
	grand, err := svcs.taxonomy.CreateCategory(ctx, &dto.CategoryBaseDTO{Name: "Grandchild", ParentID: &childA.ID})
	require.NoError(t, err)

	tree, err := svcs.taxonomy.GetCategoryTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	assert.Len(t, tree[0].Children, 2)

	ids, err := svcs.taxonomy.DescendantIDs(ctx, root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{root.ID, childA.ID, childB.ID, grand.ID}, ids)

	ids, err = svcs.taxonomy.DescendantIDs(ctx, childB.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{childB.ID}, ids)
}

func TestCreateTagIdempotent(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	first, err := svcs.taxonomy.CreateTag(ctx, &dto.TagBaseDTO{Name: "Photography"})
	require.NoError(t, err)
	assert.Equal(t, "photography", first.Slug)

	// 重复创建返回既有标签
	again, err := svcs.taxonomy.CreateTag(ctx, &dto.TagBaseDTO{Name: "Photography"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	tags, err := svcs.taxonomy.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagLookupAndDelete(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	tag, err := svcs.taxonomy.CreateTag(ctx, &dto.TagBaseDTO{Name: "Hiking"})
	require.NoError(t, err)

	got, err := svcs.taxonomy.GetTagBySlug(ctx, "hiking")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	_, err = svcs.taxonomy.GetTagBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrTagNotFound)

	require.NoError(t, svcs.taxonomy.DeleteTag(ctx, tag.ID))
	assert.ErrorIs(t, svcs.taxonomy.DeleteTag(ctx, tag.ID), ErrTagNotFound)
}

func TestTagPostCount(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "One", Body: "b", TagNames: []string{"Shared"}})
	createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Two", Body: "b", TagNames: []string{"Shared"}})

	got, err := svcs.taxonomy.GetTagBySlug(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.PostCount)
}
