package blogconf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, "PUBLIC", s.DefaultVisibility)
	assert.True(t, s.ModerateComments)
	assert.False(t, s.AllowAnonymousComments)
	assert.Equal(t, 5000, s.CommentMaxLength)
	assert.Len(t, s.ReactionTypes, 6)
	assert.Len(t, s.ThumbnailSizes, 3)
}

func TestValidateRejectsUnknownDefaultVisibility(t *testing.T) {
	s := Default()
	s.DefaultVisibility = "SECRET"

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSetting))
}

func TestValidateRejectsNonPositiveLimits(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"comment_max_length", func(s *Settings) { s.CommentMaxLength = 0 }},
		{"media_max_size_mb", func(s *Settings) { s.MediaMaxSizeMB = -1 }},
		{"posts_per_page", func(s *Settings) { s.PostsPerPage = 0 }},
		{"slug_max_length", func(s *Settings) { s.SlugMaxLength = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSetting)
		})
	}
}

func TestReactionByCode(t *testing.T) {
	s := Default()

	r, ok := s.ReactionByCode("LOVE")
	require.True(t, ok)
	assert.Equal(t, "Love", r.Label)
	assert.Equal(t, "❤️", r.Emoji)

	_, ok = s.ReactionByCode("DISLIKE")
	assert.False(t, ok)
	assert.False(t, s.IsValidReaction("DISLIKE"))
}

func TestAllowedMimeTypes(t *testing.T) {
	s := Default()

	assert.True(t, s.IsAllowedImageType("image/webp"))
	assert.False(t, s.IsAllowedImageType("image/tiff"))
	assert.True(t, s.IsAllowedVideoType("video/mp4"))
	assert.False(t, s.IsAllowedVideoType("video/avi"))
}

func TestMediaMaxSizeBytes(t *testing.T) {
	s := Default()
	s.MediaMaxSizeMB = 2
	assert.Equal(t, int64(2*1024*1024), s.MediaMaxSizeBytes())
}
