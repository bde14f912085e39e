package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"owqueue/pkg/database/models"

	"gorm.io/gorm"
)

// QueueEntryWithPlayer is a queue row joined with the player registration.
type QueueEntryWithPlayer struct {
	DiscordID   string    `gorm:"column:discord_id"`
	Battletag   string    `gorm:"column:battletag"`
	CurrentRank string    `gorm:"column:current_rank"`
	QueuedAt    time.Time `gorm:"column:queued_at"`
}

// QueueRepository is the public interface for accessing the queue rows.
type QueueRepository interface {
	InsertOrRefresh(ctx context.Context, discordID string) (bool, error)
	Delete(ctx context.Context, discordID string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	ListWithPlayers(ctx context.Context) ([]QueueEntryWithPlayer, error)
	Count(ctx context.Context) (int64, error)
}

// queueRepository repository structure.
type queueRepository struct {
	db *gorm.DB
}

// NewQueueRepository creates a queue repository.
func NewQueueRepository(db *gorm.DB) QueueRepository {
	return &queueRepository{db: db}
}

// InsertOrRefresh adds a player to the queue or resets its queue time.
// Return true if the player was newly added.
func (qr *queueRepository) InsertOrRefresh(ctx context.Context, discordID string) (bool, error) {
	var existing models.QueueEntry
	err := qr.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&existing).Error

	now := time.Now().UTC()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry := models.QueueEntry{
			DiscordID: discordID,
			QueuedAt:  now,
		}
		if err := qr.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return false, fmt.Errorf("couldn't add %s to the queue: %w", discordID, err)
		}
		return true, nil
	}

	if err != nil {
		return false, err
	}

	if err := qr.db.WithContext(ctx).Model(&existing).Update("queued_at", now).Error; err != nil {
		return false, fmt.Errorf("couldn't refresh the queue time for %s: %w", discordID, err)
	}

	return false, nil
}

// Delete removes a player from the queue.
// Return true if a row was actually removed.
func (qr *queueRepository) Delete(ctx context.Context, discordID string) (bool, error) {
	result := qr.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		Delete(&models.QueueEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteAll clears the queue. Return the number of removed entries.
func (qr *queueRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := qr.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.QueueEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOlderThan removes every entry queued before the cutoff.
// Return the number of removed entries.
func (qr *queueRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := qr.db.WithContext(ctx).
		Where("queued_at < ?", cutoff).
		Delete(&models.QueueEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListWithPlayers returns the queue joined with the player info, ordered by
// the queue time (earliest joiner first).
func (qr *queueRepository) ListWithPlayers(ctx context.Context) ([]QueueEntryWithPlayer, error) {
	var rows []QueueEntryWithPlayer

	err := qr.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Select("queue_entries.discord_id, queue_entries.queued_at, players.battletag, players.current_rank").
		Joins("JOIN players ON players.discord_id = queue_entries.discord_id").
		Order("queue_entries.queued_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Count returns the number of players currently in queue.
func (qr *queueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := qr.db.WithContext(ctx).Model(&models.QueueEntry{}).Count(&count).Error
	return count, err
}
