package commands

import (
	"context"
	"errors"
	"log"

	"owqueue/bot/embeds"
	"owqueue/bot/services/queue"

	"github.com/bwmarrin/discordgo"
)

// handleQueue adds the player to the queue, or refreshes its timer when
// already queued. Requires a prior registration.
func (h *Handler) handleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := interactionUserID(i)

	joined, err := h.service.Join(context.Background(), discordID)

	if errors.Is(err, queue.ErrNotRegistered) {
		respondEmbed(s, i, embeds.NotRegistered(), true)
		return
	}

	if err != nil {
		log.Printf("Error joining the queue for %s: %v", discordID, err)
		respondEmbed(s, i, embeds.Error("Queue Error", "An error occurred while joining the queue. Please try again later."), true)
		return
	}

	if joined {
		log.Printf("Player joined queue: %s", discordID)
		respondEmbed(s, i, embeds.QueueJoin(h.maxAge), false)
		return
	}

	log.Printf("Player refreshed queue: %s", discordID)
	respondEmbed(s, i, embeds.QueueRefresh(h.maxAge), false)
}

// handleUnqueue removes the player from the queue.
func (h *Handler) handleUnqueue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := interactionUserID(i)

	removed, err := h.service.Leave(context.Background(), discordID)
	if err != nil {
		log.Printf("Error leaving the queue for %s: %v", discordID, err)
		respondEmbed(s, i, embeds.Error("Queue Error", "An error occurred while leaving the queue. Please try again later."), true)
		return
	}

	if removed {
		log.Printf("Player left queue: %s", discordID)
		respondEmbed(s, i, embeds.QueueLeave(), false)
		return
	}

	respondEmbed(s, i, embeds.NotInQueue(""), false)
}

// handleStatus shows the current queue grouped by rank.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring the status response: %v", err)
		return
	}

	snapshot, err := h.service.Snapshot(context.Background())
	if err != nil {
		log.Printf("Error reading the queue snapshot: %v", err)
		followupEmbed(s, i, embeds.Error("Queue Error", "An error occurred while reading the queue. Please try again later."))
		return
	}

	groups := queue.AggregateByTier(snapshot)
	followupEmbed(s, i, embeds.QueueStatus(groups, len(snapshot), h.refreshEvery))
}
