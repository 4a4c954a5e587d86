package bot

import (
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/assert"
)

func TestAutoModFilter_Inspect(t *testing.T) {
	filter := NewAutoModFilter()

	tests := []struct {
		name       string
		content    string
		wantRemove bool
		wantReason string
	}{
		{"clean message", "hello everyone", false, ""},
		{"invite link", "join my server discord.gg/abc123", true, "discord.gg/"},
		{"invite link uppercase", "JOIN DISCORD.GG/ABC", true, "discord.gg/"},
		{"robux scam", "click here for FREE ROBUX", true, "free robux"},
		{"account phishing", "i can hack account for you", true, "hack account"},
		{"fragment inside longer text", "x discord.gg/y z", true, "discord.gg/"},
		{"empty message", "", false, ""},
		{"near miss is clean", "discord gg invite", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := filter.Inspect(tt.content)

			if !tt.wantRemove {
				assert.Nil(t, verdict)
				return
			}

			assert.NotNil(t, verdict)
			assert.True(t, verdict.Remove)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

func TestFloodGuard_AllowsWithinBurst(t *testing.T) {
	guard := NewFloodGuard(rate.Limit(1), 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, guard.Allow("user1"), "message %d should be within burst", i+1)
	}
	assert.False(t, guard.Allow("user1"))
}

func TestFloodGuard_UsersAreIndependent(t *testing.T) {
	guard := NewFloodGuard(rate.Limit(1), 1, time.Minute)

	assert.True(t, guard.Allow("user1"))
	assert.False(t, guard.Allow("user1"))
	assert.True(t, guard.Allow("user2"))
}
