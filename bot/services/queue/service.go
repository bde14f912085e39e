package queue

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"owqueue/bot/repositories"
	"owqueue/pkg/battletag"
	"owqueue/pkg/clock"
	"owqueue/pkg/ranks"

	"gorm.io/gorm"
)

// ErrNotRegistered is returned when joining the queue without a registration.
var ErrNotRegistered = errors.New("player is not registered")

// RankFetcher fetches the current competitive rank of a battletag.
// Lookup failures are absorbed by the fetcher and come back as the unknown
// rank, so this never returns an error.
type RankFetcher interface {
	FetchPlayerRank(ctx context.Context, tag string) string
}

// TierGroup is a group of queued players sharing the same rank.
type TierGroup struct {
	Rank    string
	Members []repositories.QueueEntryWithPlayer
}

// Service owns the queue membership lifecycle and the rank refreshes.
// All player and queue mutations go through here.
type Service struct {
	players repositories.PlayerRepository
	queue   repositories.QueueRepository
	fetcher RankFetcher
	clock   clock.Clock
}

// ServiceDeps is the dependency list for the queue service.
type ServiceDeps struct {
	Players repositories.PlayerRepository
	Queue   repositories.QueueRepository
	Fetcher RankFetcher
	Clock   clock.Clock
}

// NewService creates a queue service.
func NewService(deps *ServiceDeps) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}

	return &Service{
		players: deps.Players,
		queue:   deps.Queue,
		fetcher: deps.Fetcher,
		clock:   deps.Clock,
	}
}

// NewServiceFromDB creates a queue service with its own repositories.
func NewServiceFromDB(db *gorm.DB, fetcher RankFetcher) *Service {
	return NewService(&ServiceDeps{
		Players: repositories.NewPlayerRepository(db),
		Queue:   repositories.NewQueueRepository(db),
		Fetcher: fetcher,
	})
}

// Register registers or updates a player battletag, fetching its current
// rank. A failed rank fetch doesn't fail the registration, the rank just
// falls back to unknown. Return true on a first time registration, plus the
// rank that was stored.
func (s *Service) Register(ctx context.Context, discordID string, rawBattletag string) (bool, string, error) {
	apiBattletag, err := battletag.Normalize(rawBattletag)
	if err != nil {
		return false, "", err
	}

	rank := s.fetcher.FetchPlayerRank(ctx, apiBattletag)

	created, err := s.players.Upsert(ctx, discordID, apiBattletag, rank)
	if err != nil {
		return false, "", err
	}

	return created, rank, nil
}

// Join adds a registered player to the queue, or refreshes its queue time if
// already queued. Return true if the player was newly added.
func (s *Service) Join(ctx context.Context, discordID string) (bool, error) {
	// Queue entries must always reference a registered player.
	player, err := s.players.GetByDiscordID(ctx, discordID)
	if err != nil {
		return false, err
	}
	if player == nil {
		return false, ErrNotRegistered
	}

	return s.queue.InsertOrRefresh(ctx, discordID)
}

// Leave removes the player from the queue.
// Return false if the player wasn't queued.
func (s *Service) Leave(ctx context.Context, discordID string) (bool, error) {
	return s.queue.Delete(ctx, discordID)
}

// AdminRemove removes a player from the queue on behalf of an admin.
// Same contract as Leave, kept separate for the audit logs.
func (s *Service) AdminRemove(ctx context.Context, discordID string) (bool, error) {
	return s.queue.Delete(ctx, discordID)
}

// AdminClear empties the queue. Return the number of removed players.
func (s *Service) AdminClear(ctx context.Context) (int64, error) {
	return s.queue.DeleteAll(ctx)
}

// ExpireStale removes every entry that has been queued for longer than
// maxAge. Safe to call repeatedly. Return the number of removed players.
func (s *Service) ExpireStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.clock.Now().UTC().Add(-maxAge)
	return s.queue.DeleteOlderThan(ctx, cutoff)
}

// CountQueued returns the number of players currently in queue.
func (s *Service) CountQueued(ctx context.Context) (int64, error) {
	return s.queue.Count(ctx)
}

// Snapshot returns the current queue joined with the player info, earliest
// joiner first.
func (s *Service) Snapshot(ctx context.Context) ([]repositories.QueueEntryWithPlayer, error) {
	return s.queue.ListWithPlayers(ctx)
}

// RefreshAllQueued refreshes the rank of every queued player, one by one.
// A single player failure doesn't abort the remaining refreshes. Return the
// queue snapshot read after all the updates, and how many players were
// successfully persisted.
func (s *Service) RefreshAllQueued(ctx context.Context) ([]repositories.QueueEntryWithPlayer, int, error) {
	rows, err := s.queue.ListWithPlayers(ctx)
	if err != nil {
		return nil, 0, err
	}

	updated := 0
	for _, row := range rows {
		rank := s.fetcher.FetchPlayerRank(ctx, row.Battletag)

		if err := s.players.UpdateRank(ctx, row.DiscordID, rank); err != nil {
			log.Printf("Error refreshing rank for %s: %v", row.Battletag, err)
			continue
		}
		updated++
	}

	// Re-read the persisted state instead of patching the rows in memory.
	snapshot, err := s.queue.ListWithPlayers(ctx)
	if err != nil {
		return nil, updated, err
	}

	return snapshot, updated, nil
}

// AggregateByTier groups a queue snapshot by rank, from the highest tier to
// the lowest. Empty tiers are omitted and each group keeps the snapshot
// order.
func AggregateByTier(snapshot []repositories.QueueEntryWithPlayer) []TierGroup {
	byRank := make(map[string][]repositories.QueueEntryWithPlayer)
	for _, row := range snapshot {
		rank := strings.ToLower(row.CurrentRank)
		if rank == "" {
			rank = ranks.Unknown
		}
		byRank[rank] = append(byRank[rank], row)
	}

	var groups []TierGroup
	for _, rank := range ranks.Order {
		if members, ok := byRank[rank]; ok {
			groups = append(groups, TierGroup{Rank: rank, Members: members})
		}
	}

	return groups
}
