package subscribers

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/events"
)

const (
	DefaultNotificationCapacity = 8
	DefaultNotificationTTL      = 3800 * time.Millisecond
	GameOverNotificationTTL     = 8 * time.Second
)

// Notification is one line of player-facing feed text
type Notification struct {
	Text    string
	Expires time.Time
}

// NotificationLog keeps the most recent player-facing messages derived from events
type NotificationLog struct {
	id       string
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries []Notification
}

// NewNotificationLog creates a log holding at most capacity entries
func NewNotificationLog(id string, capacity int, ttl time.Duration) *NotificationLog {
	if capacity <= 0 {
		capacity = DefaultNotificationCapacity
	}
	return &NotificationLog{
		id:       id,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the time source
func (n *NotificationLog) SetClock(now func() time.Time) {
	n.now = now
}

// ID returns the subscriber's unique identifier
func (n *NotificationLog) ID() string {
	return n.id
}

// InterestedIn returns true for event types that produce feed text
func (n *NotificationLog) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeArenaMove, events.TypeArenaPawnSpawned, events.TypeGameEnded,
		events.TypeKingRespawned, events.TypeSpawnBlocked, events.TypeDamageApplied,
		events.TypeUnitPurchased:
		return true
	}
	return false
}

// HandleEvent converts an event into a notification line
func (n *NotificationLog) HandleEvent(event events.Event) {
	ttl := n.ttl
	var text string
	switch e := event.(type) {
	case *events.ArenaMoveEvent:
		who := "Black"
		if e.White {
			who = "White"
		}
		text = fmt.Sprintf("Board %d: %s played %s", e.Arena+1, who, e.SAN)
	case *events.ArenaPawnSpawnedEvent:
		if e.Blocked() {
			text = fmt.Sprintf("Capture on Board %d: no empty square to spawn a pawn on Board %d", e.SourceArena+1, e.TargetArena+1)
		} else {
			text = fmt.Sprintf("Capture on Board %d: spawned black pawn on Board %d at %s", e.SourceArena+1, e.TargetArena+1, e.Square)
		}
	case *events.GameEndedEvent:
		text = e.Reason
		ttl = GameOverNotificationTTL
	case *events.KingRespawnedEvent:
		text = fmt.Sprintf("King respawned at %s.", e.At.Algebraic())
	case *events.SpawnBlockedEvent:
		text = fmt.Sprintf("Spawn blocked: no room for a %s.", e.Kind)
	case *events.DamageAppliedEvent:
		text = fmt.Sprintf("%s -%d HP (health %d).", e.Reason, e.Amount, e.Health)
	case *events.UnitPurchasedEvent:
		text = fmt.Sprintf("Deployed %s at %s for %d gold.", e.Kind, e.At.Algebraic(), e.Cost)
	default:
		return
	}
	n.Add(text, ttl)
}

// Add appends a line, dropping the oldest beyond capacity
func (n *NotificationLog) Add(text string, ttl time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = n.now().Add(ttl)
	}
	n.entries = append(n.entries, Notification{Text: text, Expires: expires})
	if over := len(n.entries) - n.capacity; over > 0 {
		n.entries = append([]Notification(nil), n.entries[over:]...)
	}
}

// Active returns the texts that have not expired, oldest first.
// Entries added with a non-positive TTL never expire.
func (n *NotificationLog) Active() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	out := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		if e.Expires.IsZero() || e.Expires.After(now) {
			out = append(out, e.Text)
		}
	}
	return out
}

// All returns every retained text regardless of expiry, oldest first
func (n *NotificationLog) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.entries))
	for i, e := range n.entries {
		out[i] = e.Text
	}
	return out
}

// Clear drops all entries
func (n *NotificationLog) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = nil
}
