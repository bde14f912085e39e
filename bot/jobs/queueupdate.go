package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"owqueue/bot/services/queue"
	"owqueue/pkg/logger"

	"github.com/google/uuid"
)

// Publisher is the broadcast destination of the queue status.
type Publisher interface {
	PublishQueueStatus(groups []queue.TierGroup, totalPlayers int) error
}

// QueueUpdateJob is the scheduled cycle: expire stale entries, refresh the
// ranks of every queued player and publish the aggregated status.
type QueueUpdateJob struct {
	service   *queue.Service
	publisher Publisher
	logger    *logger.CycleLogger
	maxAge    time.Duration
}

// NewQueueUpdateJob creates the queue update job.
// The publisher may be nil when no broadcast channel is configured.
func NewQueueUpdateJob(service *queue.Service, publisher Publisher, cycleLogger *logger.CycleLogger, maxAge time.Duration) *QueueUpdateJob {
	return &QueueUpdateJob{
		service:   service,
		publisher: publisher,
		logger:    cycleLogger,
		maxAge:    maxAge,
	}
}

// Run executes one cycle. Errors and panics are contained here so a bad
// cycle never takes the scheduler down.
func (j *QueueUpdateJob) Run(ctx context.Context) {
	cycleID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Queue update cycle %s panicked: %v", cycleID, r)
			j.logger.Errorf("cycle %s panicked: %v", cycleID, r)
		}
		j.shipLog(cycleID)
	}()

	j.logger.Infof("cycle %s started", cycleID)

	// 1. Remove the entries that sat on the queue for too long.
	expired, err := j.service.ExpireStale(ctx, j.maxAge)
	if err != nil {
		log.Printf("Error expiring stale queue entries: %v", err)
		j.logger.Errorf("cycle %s: expire failed: %v", cycleID, err)
		return
	}
	if expired > 0 {
		j.logger.Infof("cycle %s: removed %d expired player(s) from queue", cycleID, expired)
	}

	// 2. Refresh the ranks of everyone still queued.
	snapshot, updated, err := j.service.RefreshAllQueued(ctx)
	if err != nil {
		log.Printf("Error refreshing queued player ranks: %v", err)
		j.logger.Errorf("cycle %s: refresh failed: %v", cycleID, err)
		return
	}
	j.logger.Infof("cycle %s: refreshed ranks for %d player(s)", cycleID, updated)

	// 3. Publish the aggregated status.
	if j.publisher == nil {
		return
	}

	groups := queue.AggregateByTier(snapshot)
	if err := j.publisher.PublishQueueStatus(groups, len(snapshot)); err != nil {
		log.Printf("Error publishing the queue status: %v", err)
		j.logger.Errorf("cycle %s: publish failed: %v", cycleID, err)
		return
	}

	j.logger.Infof("cycle %s: published queue status with %d player(s)", cycleID, len(snapshot))
}

// shipLog uploads the cycle log when a bucket is configured.
func (j *QueueUpdateJob) shipLog(cycleID string) {
	if !j.logger.CanUpload() {
		return
	}

	objectKey := fmt.Sprintf("queue-cycles/%s/%s.log", time.Now().UTC().Format("2006-01-02"), cycleID)
	if err := j.logger.UploadToS3Bucket(objectKey); err != nil {
		log.Printf("Error uploading the cycle log: %v", err)
	}
}
