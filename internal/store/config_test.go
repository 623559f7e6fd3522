package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	s := NewConfigStore(dir)

	doc, err := s.Snapshot()
	require.NoError(t, err)
	for _, p := range Platforms {
		assert.Empty(t, doc[p])
	}

	// The default document was persisted
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err)
}

func TestConfigStoreAddAndGet(t *testing.T) {
	s := NewConfigStore(t.TempDir())

	err := s.AddCreator(PlatformTwitch, "sam", CreatorConfig{
		Enabled: true,
		Message: "{user} is live! {link}",
	})
	require.NoError(t, err)

	creators, err := s.PlatformCreators(PlatformTwitch)
	require.NoError(t, err)
	require.Contains(t, creators, "sam")
	assert.True(t, creators["sam"].Enabled)
	assert.False(t, creators["sam"].Routed(), "no channel yet")

	// Duplicate handle is rejected
	err = s.AddCreator(PlatformTwitch, "sam", CreatorConfig{})
	assert.ErrorIs(t, err, ErrCreatorExists)

	// Same handle on a different platform is fine
	err = s.AddCreator(PlatformYouTube, "sam", CreatorConfig{})
	assert.NoError(t, err)
}

func TestConfigStoreHandleIsCaseSensitive(t *testing.T) {
	s := NewConfigStore(t.TempDir())

	require.NoError(t, s.AddCreator(PlatformTwitch, "Sam", CreatorConfig{}))
	assert.NoError(t, s.AddCreator(PlatformTwitch, "sam", CreatorConfig{}))
}

func TestConfigStoreUpdateCreator(t *testing.T) {
	s := NewConfigStore(t.TempDir())
	require.NoError(t, s.AddCreator(PlatformTikTok, "sam", CreatorConfig{Enabled: true}))

	err := s.UpdateCreator(PlatformTikTok, "sam", func(c *CreatorConfig) {
		c.ChannelID = "123"
		c.Ping = "@everyone"
	})
	require.NoError(t, err)

	creators, err := s.PlatformCreators(PlatformTikTok)
	require.NoError(t, err)
	assert.True(t, creators["sam"].Routed())
	assert.Equal(t, "@everyone", creators["sam"].Ping)

	err = s.UpdateCreator(PlatformTikTok, "nobody", func(c *CreatorConfig) {})
	assert.ErrorIs(t, err, ErrCreatorNotFound)
}

func TestConfigStoreRemoveCreator(t *testing.T) {
	s := NewConfigStore(t.TempDir())
	require.NoError(t, s.AddCreator(PlatformYouTube, "sam", CreatorConfig{}))

	require.NoError(t, s.RemoveCreator(PlatformYouTube, "sam"))

	creators, err := s.PlatformCreators(PlatformYouTube)
	require.NoError(t, err)
	assert.NotContains(t, creators, "sam")

	assert.ErrorIs(t, s.RemoveCreator(PlatformYouTube, "sam"), ErrCreatorNotFound)
}

func TestConfigStoreUnknownPlatform(t *testing.T) {
	s := NewConfigStore(t.TempDir())
	assert.ErrorIs(t, s.AddCreator("myspace", "sam", CreatorConfig{}), ErrUnknownPlatform)
	_, err := s.PlatformCreators("myspace")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestConfigStoreRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"myspace": {}}`), 0o644))

	s := NewConfigStore(dir)
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestConfigStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewConfigStore(dir)
	require.NoError(t, first.AddCreator(PlatformTwitch, "sam", CreatorConfig{Enabled: true, ChannelID: "99"}))

	second := NewConfigStore(dir)
	creators, err := second.PlatformCreators(PlatformTwitch)
	require.NoError(t, err)
	require.Contains(t, creators, "sam")
	assert.Equal(t, "99", creators["sam"].ChannelID)
}
