package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"owqueue/bot/jobs"
	"owqueue/bot/repositories"
	dbtestutil "owqueue/bot/repositories/testutil"
	"owqueue/bot/services/queue"
	"owqueue/internal/testutil"
	"owqueue/pkg/config"
	"owqueue/pkg/logger"
	"owqueue/pkg/ranks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeFetcher returns canned ranks per battletag.
type fakeFetcher struct {
	ranks map[string]string
}

func (f *fakeFetcher) FetchPlayerRank(ctx context.Context, tag string) string {
	if rank, ok := f.ranks[tag]; ok {
		return rank
	}
	return ranks.Unknown
}

// fakePublisher records every broadcast it receives.
type fakePublisher struct {
	groups       [][]queue.TierGroup
	totalPlayers []int
	err          error
}

func (p *fakePublisher) PublishQueueStatus(groups []queue.TierGroup, totalPlayers int) error {
	p.groups = append(p.groups, groups)
	p.totalPlayers = append(p.totalPlayers, totalPlayers)
	return p.err
}

func newTestJob(t *testing.T, fetcher *fakeFetcher, publisher jobs.Publisher) (*jobs.QueueUpdateJob, *queue.Service, *gorm.DB) {
	t.Helper()

	db, cleanup := dbtestutil.NewTestConnection(t)
	t.Cleanup(cleanup)

	mockClock := testutil.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	service := queue.NewService(&queue.ServiceDeps{
		Players: repositories.NewPlayerRepository(db),
		Queue:   repositories.NewQueueRepository(db),
		Fetcher: fetcher,
		Clock:   mockClock,
	})

	// No log bucket configured, so nothing gets shipped.
	cycleLogger, err := logger.CreateLogger(config.BucketConfiguration{})
	require.NoError(t, err)
	t.Cleanup(func() { cycleLogger.Close() })

	return jobs.NewQueueUpdateJob(service, publisher, cycleLogger, 24*time.Hour), service, db
}

func TestQueueUpdateJobRun(t *testing.T) {
	fetcher := &fakeFetcher{ranks: map[string]string{
		"Alpha-1": ranks.Diamond,
		"Beta-2":  ranks.Gold,
	}}
	publisher := &fakePublisher{}
	job, service, db := newTestJob(t, fetcher, publisher)
	ctx := context.Background()

	for _, player := range []struct{ id, tag string }{
		{"111", "Alpha#1"},
		{"222", "Beta#2"},
		{"333", "Stale#3"},
	} {
		_, _, err := service.Register(ctx, player.id, player.tag)
		require.NoError(t, err)
		_, err = service.Join(ctx, player.id)
		require.NoError(t, err)
	}

	// Push the third player past the queue timeout.
	require.NoError(t, db.Exec(
		"UPDATE queue_entries SET queued_at = ? WHERE discord_id = ?",
		time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC), "333",
	).Error)

	job.Run(ctx)

	// One broadcast with the two remaining players, highest tier first.
	require.Len(t, publisher.groups, 1)
	assert.Equal(t, []int{2}, publisher.totalPlayers)

	groups := publisher.groups[0]
	require.Len(t, groups, 2)
	assert.Equal(t, ranks.Diamond, groups[0].Rank)
	assert.Equal(t, ranks.Gold, groups[1].Rank)

	count, err := service.CountQueued(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestQueueUpdateJobEmptyQueueStillPublishes(t *testing.T) {
	publisher := &fakePublisher{}
	job, _, _ := newTestJob(t, &fakeFetcher{}, publisher)

	job.Run(context.Background())

	require.Len(t, publisher.groups, 1)
	assert.Empty(t, publisher.groups[0])
	assert.Equal(t, []int{0}, publisher.totalPlayers)
}

func TestQueueUpdateJobNilPublisher(t *testing.T) {
	job, service, _ := newTestJob(t, &fakeFetcher{}, nil)
	ctx := context.Background()

	_, _, err := service.Register(ctx, "111", "Alpha#1")
	require.NoError(t, err)
	_, err = service.Join(ctx, "111")
	require.NoError(t, err)

	// Runs to completion without a broadcast destination.
	job.Run(ctx)

	count, err := service.CountQueued(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestQueueUpdateJobPublishErrorContained(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("discord is down")}
	job, _, _ := newTestJob(t, &fakeFetcher{}, publisher)

	// A publish failure must not panic or propagate.
	job.Run(context.Background())

	assert.Len(t, publisher.groups, 1)
}

// panicPublisher simulates a broadcast destination blowing up mid cycle.
type panicPublisher struct{}

func (p *panicPublisher) PublishQueueStatus(groups []queue.TierGroup, totalPlayers int) error {
	panic("boom")
}

func TestQueueUpdateJobPanicContained(t *testing.T) {
	job, _, _ := newTestJob(t, &fakeFetcher{}, &panicPublisher{})

	assert.NotPanics(t, func() {
		job.Run(context.Background())
	})
}
