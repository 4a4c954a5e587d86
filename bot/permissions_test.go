package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/stretchr/testify/assert"
)

func role(name string, permissions int64) *discordgo.Role {
	return &discordgo.Role{ID: name, Name: name, Permissions: permissions}
}

func TestPermissionResolver_Authorize(t *testing.T) {
	resolver := NewPermissionResolver("111")

	tests := []struct {
		name     string
		userID   string
		roles    []*discordgo.Role
		required []Capability
		want     bool
	}{
		{
			name:     "no requirements authorizes anyone",
			userID:   "222",
			roles:    nil,
			required: nil,
			want:     true,
		},
		{
			name:     "owner bypasses everything",
			userID:   "111",
			roles:    nil,
			required: []Capability{CapabilityAdmin},
			want:     true,
		},
		{
			name:     "admin keyword in role name",
			userID:   "222",
			roles:    []*discordgo.Role{role("Server Admins", 0)},
			required: []Capability{CapabilityAdmin},
			want:     true,
		},
		{
			name:     "administrator permission bit",
			userID:   "222",
			roles:    []*discordgo.Role{role("Bosses", discordgo.PermissionAdministrator)},
			required: []Capability{CapabilityAdmin},
			want:     true,
		},
		{
			name:     "dev keyword matches developer capability",
			userID:   "222",
			roles:    []*discordgo.Role{role("Dev Team", 0)},
			required: []Capability{CapabilityDeveloper},
			want:     true,
		},
		{
			name:     "mod keyword matches moderator capability",
			userID:   "222",
			roles:    []*discordgo.Role{role("Mods", 0)},
			required: []Capability{CapabilityModerator},
			want:     true,
		},
		{
			name:     "moderate members permission bit",
			userID:   "222",
			roles:    []*discordgo.Role{role("Peacekeepers", discordgo.PermissionModerateMembers)},
			required: []Capability{CapabilityModerator},
			want:     true,
		},
		{
			name:     "helper keyword matches staff capability",
			userID:   "222",
			roles:    []*discordgo.Role{role("Helpers", 0)},
			required: []Capability{CapabilityStaff},
			want:     true,
		},
		{
			name:     "keyword match is case-insensitive",
			userID:   "222",
			roles:    []*discordgo.Role{role("STAFF crew", 0)},
			required: []Capability{CapabilityStaff},
			want:     true,
		},
		{
			name:     "any one required capability suffices",
			userID:   "222",
			roles:    []*discordgo.Role{role("Helpers", 0)},
			required: []Capability{CapabilityAdmin, CapabilityStaff},
			want:     true,
		},
		{
			name:     "unrelated roles deny",
			userID:   "222",
			roles:    []*discordgo.Role{role("Members", 0), role("Boosters", 0)},
			required: []Capability{CapabilityModerator},
			want:     false,
		},
		{
			name:     "no roles deny",
			userID:   "222",
			roles:    nil,
			required: []Capability{CapabilityStaff},
			want:     false,
		},
		{
			name:     "owner capability only via bypass",
			userID:   "222",
			roles:    []*discordgo.Role{role("Owner Wannabe", discordgo.PermissionAdministrator)},
			required: []Capability{CapabilityOwner},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Authorize(tt.userID, tt.roles, tt.required)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPermissionResolver_EmptyOwnerIDDisablesBypass(t *testing.T) {
	resolver := NewPermissionResolver("")

	// An empty-ID caller must not be treated as the unset owner
	got := resolver.Authorize("", nil, []Capability{CapabilityAdmin})
	assert.False(t, got)
}
