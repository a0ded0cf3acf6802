package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashContentNormalization(t *testing.T) {
	// 大小写和首尾空白不影响内容指纹
	assert.Equal(t, HashContent("Hello World"), HashContent("  hello world \n"))
	assert.Equal(t, HashContent("HELLO WORLD"), HashContent("hello world"))
	assert.NotEqual(t, HashContent("hello world"), HashContent("hello  world"))
	assert.Len(t, HashContent("anything"), 64)
}

func TestPostPreview(t *testing.T) {
	p := &Post{Body: "short body"}
	assert.Equal(t, "short body", p.Preview())

	p = &Post{Body: "short body", Excerpt: "hand-written excerpt"}
	assert.Equal(t, "hand-written excerpt", p.Preview())

	long := strings.Repeat("a", 500)
	p = &Post{Body: long}
	preview := p.Preview()
	assert.Len(t, preview, 283)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestPostIsScheduled(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, (&Post{ScheduledAt: &future}).IsScheduled(now))
	assert.False(t, (&Post{ScheduledAt: &past}).IsScheduled(now))
	assert.False(t, (&Post{}).IsScheduled(now))
	// 已发布或仍是草稿的帖子不算待发布
	assert.False(t, (&Post{ScheduledAt: &future, PublishedAt: &past}).IsScheduled(now))
	assert.False(t, (&Post{ScheduledAt: &future, IsDraft: true}).IsScheduled(now))
}

func TestPostCanView(t *testing.T) {
	now := time.Now()
	anon := Anonymous()
	author := Viewer{ID: 1}
	other := Viewer{ID: 2}

	published := &now

	t.Run("draft author only", func(t *testing.T) {
		p := &Post{AuthorID: 1, Visibility: VisibilityPublic, IsDraft: true}
		assert.True(t, p.CanView(author))
		assert.False(t, p.CanView(other))
		assert.False(t, p.CanView(anon))
	})

	t.Run("deleted invisible", func(t *testing.T) {
		p := &Post{AuthorID: 1, Visibility: VisibilityPublic, IsDeleted: true, PublishedAt: published}
		assert.False(t, p.CanView(author))
		assert.False(t, p.CanView(anon))
	})

	t.Run("public and unlisted open", func(t *testing.T) {
		for _, vis := range []string{VisibilityPublic, VisibilityUnlisted} {
			p := &Post{AuthorID: 1, Visibility: vis, PublishedAt: published}
			assert.True(t, p.CanView(anon), vis)
			assert.True(t, p.CanView(other), vis)
		}
	})

	t.Run("private author only", func(t *testing.T) {
		p := &Post{AuthorID: 1, Visibility: VisibilityPrivate, PublishedAt: published}
		assert.True(t, p.CanView(author))
		assert.False(t, p.CanView(other))
		assert.False(t, p.CanView(anon))
	})

	t.Run("custom allow list", func(t *testing.T) {
		p := &Post{
			AuthorID:     1,
			Visibility:   VisibilityCustom,
			PublishedAt:  published,
			AllowedUsers: []PostAllowedUser{{PostID: 1, UserID: 2}},
		}
		assert.True(t, p.CanView(author))
		assert.True(t, p.CanView(other))
		assert.False(t, p.CanView(Viewer{ID: 3}))
		assert.False(t, p.CanView(anon))
	})

	t.Run("friends denied without checker", func(t *testing.T) {
		p := &Post{AuthorID: 1, Visibility: VisibilityFriends, PublishedAt: published}
		assert.True(t, p.CanView(author))
		assert.False(t, p.CanView(other))
		assert.False(t, p.CanView(anon))
	})

	t.Run("scheduled author only until due", func(t *testing.T) {
		future := now.Add(time.Hour)
		p := &Post{AuthorID: 1, Visibility: VisibilityPublic, ScheduledAt: &future}
		assert.True(t, p.CanView(author))
		assert.False(t, p.CanView(anon))
	})
}

func TestViewer(t *testing.T) {
	assert.False(t, Anonymous().IsAuthenticated())
	assert.True(t, Viewer{ID: 7}.IsAuthenticated())

	v := Viewer{ID: 7, Roles: []string{"admin", "author"}}
	assert.True(t, v.IsAdmin())
	assert.True(t, v.HasRole("author"))
	assert.False(t, Viewer{ID: 8}.IsAdmin())
}
