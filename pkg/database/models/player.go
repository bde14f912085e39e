package models

import (
	"time"

	"owqueue/pkg/ranks"

	"gorm.io/gorm"
)

// Player is the registration of a Discord user with its battletag.
type Player struct {
	ID        uint   `gorm:"primaryKey"`
	DiscordID string `gorm:"uniqueIndex;type:varchar(32);not null"` // Unique identifier from Discord.
	Battletag string `gorm:"type:varchar(64);not null"`             // Always stored in the API format (Name-1234).

	// Highest rank found on the last refresh.
	CurrentRank string `gorm:"type:varchar(16)"`

	// Last time a rank refresh was attempted for the player.
	LastRankUpdate time.Time

	CreatedAt time.Time
}

// Default the rank to unknown when nothing was fetched yet.
func (p *Player) BeforeCreate(tx *gorm.DB) (err error) {
	if p.CurrentRank == "" {
		p.CurrentRank = ranks.Unknown
	}
	return nil
}
