package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"owqueue/bot/commands"
	"owqueue/bot/jobs"
	"owqueue/bot/services/queue"
	"owqueue/fetcher/overfast"
	"owqueue/pkg/config"
	"owqueue/pkg/database"
	"owqueue/pkg/logger"
	"owqueue/pkg/redis"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Migrate all necessary models.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Couldn't migrate the database: %v", err)
	}
	log.Println("Database initialized")

	// The rank cache is optional, the client works without it.
	var cache overfast.CacheClient
	redisClient := redis.NewClient(cfg.Redis)
	if redisClient != nil {
		cache = redisClient
		defer redisClient.Close()
	}

	// The client session is reused for every lookup until shutdown.
	rankClient := overfast.NewClient(overfast.ClientConfig{
		BaseURL:      cfg.OverFast.BaseURL,
		Cache:        cache,
		RequestDelay: cfg.OverFast.RequestDelay,
	})
	defer rankClient.Close()

	service := queue.NewServiceFromDB(db, rankClient)

	cycleLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		log.Fatalf("Couldn't create the cycle logger: %v", err)
	}
	defer cycleLogger.Close()

	// Create the Discord session and wire the command handlers.
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Couldn't create the Discord session: %v", err)
	}

	handler := commands.New(service, cfg.Queue.UpdateInterval, cfg.Queue.MaxAge)
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	session.AddHandler(handler.HandleInteraction)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as %s (ID: %s)", r.User.String(), r.User.ID)
		if err := s.UpdateWatchStatus(0, "SA Queue | /help"); err != nil {
			log.Printf("Couldn't set the bot presence: %v", err)
		}
	})

	if err := session.Open(); err != nil {
		log.Fatalf("Couldn't connect to Discord: %v", err)
	}
	defer session.Close()

	// Sync the slash commands.
	_, err = session.ApplicationCommandBulkOverwrite(session.State.User.ID, "", handler.Definitions())
	if err != nil {
		log.Fatalf("Couldn't register the slash commands: %v", err)
	}
	log.Println("Slash commands synced")

	// The update cycle only publishes when a channel was configured.
	var publisher jobs.Publisher
	if cfg.Discord.QueueChannelID != "" {
		publisher = &discordPublisher{
			session:      session,
			channelID:    cfg.Discord.QueueChannelID,
			refreshEvery: cfg.Queue.UpdateInterval,
		}
	} else {
		log.Println("QUEUE_CHANNEL_ID not set - automatic updates will not be posted")
	}

	scheduler, err := startScheduler(cfg, service, publisher, cycleLogger)
	if err != nil {
		log.Fatalf("Couldn't start the scheduler: %v", err)
	}

	defer func() {
		// Shutdown the scheduler when main() exits.
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down...")
}

// startScheduler registers the queue update cycle.
// The cycle never overlaps itself: if a run is still going when the timer
// fires, the new firing is rescheduled.
func startScheduler(cfg *config.Config, service *queue.Service, publisher jobs.Publisher, cycleLogger *logger.CycleLogger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	job := jobs.NewQueueUpdateJob(service, publisher, cycleLogger, cfg.Queue.MaxAge)

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Queue.UpdateInterval),
		gocron.NewTask(
			job.Run,
			context.Background(),
		),
		gocron.WithName("queue-update"),
		gocron.WithTags("queue"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Println("Started queue update background task")

	return scheduler, nil
}
