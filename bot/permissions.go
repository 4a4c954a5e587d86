package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Capability is a level of access a command can require
type Capability string

const (
	CapabilityOwner     Capability = "owner"
	CapabilityAdmin     Capability = "admin"
	CapabilityDeveloper Capability = "developer"
	CapabilityModerator Capability = "moderator"
	CapabilityStaff     Capability = "staff"
)

// capabilityRule grants a capability when any caller role matches one of the
// name keywords (case-insensitive substring) or carries the permission bit
type capabilityRule struct {
	keywords   []string
	permission int64
}

var capabilityRules = map[Capability]capabilityRule{
	CapabilityAdmin:     {keywords: []string{"admin"}, permission: discordgo.PermissionAdministrator},
	CapabilityDeveloper: {keywords: []string{"developer", "dev"}},
	CapabilityModerator: {keywords: []string{"mod"}, permission: discordgo.PermissionModerateMembers},
	CapabilityStaff:     {keywords: []string{"staff", "helper"}},
}

// PermissionResolver decides whether a caller may run a command based on
// their roles and the bot owner ID
type PermissionResolver struct {
	ownerID string
}

// NewPermissionResolver creates a resolver. An empty ownerID disables the
// owner bypass.
func NewPermissionResolver(ownerID string) *PermissionResolver {
	return &PermissionResolver{ownerID: ownerID}
}

// Authorize reports whether a caller holding the given roles satisfies at
// least one of the required capabilities. An empty requirement set
// authorizes anyone; the owner is authorized for everything.
func (p *PermissionResolver) Authorize(userID string, roles []*discordgo.Role, required []Capability) bool {
	if len(required) == 0 {
		return true
	}
	if p.ownerID != "" && userID == p.ownerID {
		return true
	}

	for _, capability := range required {
		if capability == CapabilityOwner {
			// Only the bypass above grants owner
			continue
		}
		if p.hasCapability(roles, capability) {
			return true
		}
	}

	return false
}

func (p *PermissionResolver) hasCapability(roles []*discordgo.Role, capability Capability) bool {
	rule, ok := capabilityRules[capability]
	if !ok {
		return false
	}

	for _, role := range roles {
		name := strings.ToLower(role.Name)
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return true
			}
		}
		if rule.permission != 0 && role.Permissions&rule.permission != 0 {
			return true
		}
	}

	return false
}
