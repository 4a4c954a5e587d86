package bot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"scriptbot/events"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// deniedFragments are matched case-insensitively anywhere in message content
var deniedFragments = []string{
	"discord.gg/",
	"free robux",
	"hack account",
}

// Verdict is the outcome of inspecting a message
type Verdict struct {
	Remove bool
	// Reason names the matched fragment, or the flood condition
	Reason string
}

// AutoModFilter inspects message content against the deny list. Inspection
// is pure; the message handler owns the side effects.
type AutoModFilter struct{}

// NewAutoModFilter creates a filter over the built-in deny list
func NewAutoModFilter() *AutoModFilter {
	return &AutoModFilter{}
}

// Inspect returns a removal verdict for the first matched fragment, or nil
// when the content is clean
func (f *AutoModFilter) Inspect(content string) *Verdict {
	lowered := strings.ToLower(content)
	for _, fragment := range deniedFragments {
		if strings.Contains(lowered, fragment) {
			return &Verdict{Remove: true, Reason: fragment}
		}
	}
	return nil
}

// FloodGuard rate-limits messages per user with a token bucket each. Idle
// buckets are evicted lazily so the map only holds recently active users.
type FloodGuard struct {
	mu      sync.Mutex
	buckets map[string]*userBucket
	r       rate.Limit
	b       int
	ttl     time.Duration
}

type userBucket struct {
	lim     *rate.Limiter
	lastHit time.Time
}

// NewFloodGuard allows r messages per second sustained with the given burst
func NewFloodGuard(r rate.Limit, burst int, ttl time.Duration) *FloodGuard {
	return &FloodGuard{
		buckets: make(map[string]*userBucket),
		r:       r,
		b:       burst,
		ttl:     ttl,
	}
}

// Allow reports whether the user may post another message
func (g *FloodGuard) Allow(userID string) bool {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	// lazy cleanup
	for k, v := range g.buckets {
		if now.Sub(v.lastHit) > g.ttl {
			delete(g.buckets, k)
		}
	}

	bucket, ok := g.buckets[userID]
	if !ok {
		bucket = &userBucket{
			lim:     rate.NewLimiter(g.r, g.b),
			lastHit: now,
		}
		g.buckets[userID] = bucket
	}

	bucket.lastHit = now
	return bucket.lim.Allow()
}

// handleMessage screens free-text messages through the deny list and the
// flood guard. Bots are never screened.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !b.autoModEnabled {
		return
	}

	verdict := b.filter.Inspect(m.Content)
	if verdict == nil && !b.floodGuard.Allow(m.Author.ID) {
		verdict = &Verdict{Remove: true, Reason: "message flood"}
	}
	if verdict == nil || !verdict.Remove {
		return
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.WithFields(log.Fields{
			"channelID": m.ChannelID,
			"messageID": m.ID,
		}).WithError(err).Error("Failed to delete filtered message")
		return
	}

	notice := &discordgo.MessageEmbed{
		Title:       "Message Removed",
		Description: fmt.Sprintf("<@%s>, your message was removed by auto-moderation.", m.Author.ID),
		Color:       colorError,
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, notice); err != nil {
		log.WithError(err).Warn("Failed to send auto-moderation notice")
	}

	userID, _ := strconv.ParseInt(m.Author.ID, 10, 64)
	b.eventBus.Emit(b.ctx, events.MessageFilteredEvent{
		UserID:    userID,
		ChannelID: m.ChannelID,
		Reason:    verdict.Reason,
	})

	log.WithFields(log.Fields{
		"userID":  m.Author.ID,
		"channel": m.ChannelID,
		"reason":  verdict.Reason,
	}).Info("Filtered message removed")
}
