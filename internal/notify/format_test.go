package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"streamnotify/internal/store"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		subs     map[string]string
		want     string
	}{
		{
			name:     "basic substitution",
			template: "{user} live: {link}",
			subs:     map[string]string{"user": "sam", "link": "http://x/sam"},
			want:     "sam live: http://x/sam",
		},
		{
			name:     "unknown placeholder left verbatim",
			template: "{user} plays {game}",
			subs:     map[string]string{"user": "sam"},
			want:     "sam plays {game}",
		},
		{
			name:     "repeated placeholder",
			template: "{user} {user}",
			subs:     map[string]string{"user": "sam"},
			want:     "sam sam",
		},
		{
			name:     "no placeholders",
			template: "plain text",
			subs:     map[string]string{"user": "sam"},
			want:     "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.subs))
		})
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "@everyone sam is live", Compose("@everyone", "sam is live"))
	assert.Equal(t, "sam is live", Compose("", "sam is live"))
}

func TestPlatformDefaults(t *testing.T) {
	for _, p := range store.Platforms {
		assert.NotEmpty(t, DefaultMessage(p))
		assert.NotEmpty(t, PlaceholderHelp(p))
		assert.NotZero(t, PlatformColor(p))
	}
	assert.Equal(t, "YouTube", PlatformName(store.PlatformYouTube))
	assert.Equal(t, 0x9146FF, PlatformColor(store.PlatformTwitch))
	assert.Equal(t, 0xFF0000, PlatformColor(store.PlatformYouTube))
	assert.Equal(t, 0x00F2EA, PlatformColor(store.PlatformTikTok))
}
