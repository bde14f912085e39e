package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"owqueue/pkg/database/models"

	"gorm.io/gorm"
)

// PlayerRepository is the public interface for accessing the player rows.
type PlayerRepository interface {
	Upsert(ctx context.Context, discordID string, battletag string, rank string) (bool, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error)
	UpdateRank(ctx context.Context, discordID string, rank string) error
	ListAll(ctx context.Context) ([]models.Player, error)
}

// playerRepository repository structure.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// Upsert creates a player or updates the existing registration.
// Return true if it's a first time registration.
func (pr *playerRepository) Upsert(ctx context.Context, discordID string, battletag string, rank string) (bool, error) {
	var existing models.Player
	err := pr.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&existing).Error

	now := time.Now().UTC()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		player := models.Player{
			DiscordID:      discordID,
			Battletag:      battletag,
			CurrentRank:    rank,
			LastRankUpdate: now,
		}
		if err := pr.db.WithContext(ctx).Create(&player).Error; err != nil {
			return false, fmt.Errorf("couldn't create the player %s: %w", discordID, err)
		}
		return true, nil
	}

	if err != nil {
		return false, err
	}

	updates := map[string]any{
		"battletag":        battletag,
		"current_rank":     rank,
		"last_rank_update": now,
	}
	if err := pr.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("couldn't update the player %s: %w", discordID, err)
	}

	return false, nil
}

// GetByDiscordID returns the player registration, or nil when not registered.
func (pr *playerRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error) {
	var player models.Player
	err := pr.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// UpdateRank sets the player rank and stamps the refresh time.
func (pr *playerRepository) UpdateRank(ctx context.Context, discordID string, rank string) error {
	updates := map[string]any{
		"current_rank":     rank,
		"last_rank_update": time.Now().UTC(),
	}
	return pr.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("discord_id = ?", discordID).
		Updates(updates).Error
}

// ListAll returns every registered player.
func (pr *playerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := pr.db.WithContext(ctx).Order("created_at asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}
