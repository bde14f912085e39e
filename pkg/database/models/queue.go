package models

import "time"

// QueueEntry is a player currently waiting on the queue.
// At most one entry exists per Discord user, and every entry references a
// registered Player. The reference is enforced by the queue service, since
// SQLite doesn't enforce foreign keys by default.
type QueueEntry struct {
	ID        uint   `gorm:"primaryKey"`
	DiscordID string `gorm:"uniqueIndex;type:varchar(32);not null"`

	// Reset on every re-join. Entries older than the configured max age are
	// swept by the update cycle.
	QueuedAt time.Time `gorm:"index"`
}
