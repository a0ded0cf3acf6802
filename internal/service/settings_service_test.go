package service

import (
	"testing"

	"Inkstone/internal/pkg/blogconf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsExposesEffectiveConfig(t *testing.T) {
	settings := blogconf.Default()
	settings.ModerateComments = false
	settings.MediaMaxSizeMB = 10

	svc := NewSettingsService(settings)
	out := svc.GetSettings()

	assert.Equal(t, "PUBLIC", out.DefaultVisibility)
	assert.False(t, out.ModerateComments)
	assert.Equal(t, int64(10), out.MediaMaxSizeMB)
	assert.Equal(t, settings.CommentMaxLength, out.CommentMaxLength)
	assert.Len(t, out.VisibilityChoices, len(settings.VisibilityChoices))
	require.NotEmpty(t, out.ReactionTypes)
	assert.Equal(t, "LIKE", out.ReactionTypes[0].Code)
	assert.Equal(t, "👍", out.ReactionTypes[0].Emoji)
}
