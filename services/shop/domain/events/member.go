package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicMemberJoined is the Watermill topic published when a Member joins.
const TopicMemberJoined = "member.joined"

// MemberJoinedEvent is published after a new Member is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicMemberJoined).
type MemberJoinedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	MemberID   uuid.UUID `json:"member_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
