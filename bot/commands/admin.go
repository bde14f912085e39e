package commands

import (
	"context"
	"fmt"
	"log"

	"owqueue/bot/embeds"

	"github.com/bwmarrin/discordgo"
)

// handleAdminClear empties the queue.
func (h *Handler) handleAdminClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	count, err := h.service.AdminClear(context.Background())
	if err != nil {
		log.Printf("Error clearing the queue: %v", err)
		respondEmbed(s, i, embeds.Error("Queue Error", "An error occurred while clearing the queue."), true)
		return
	}

	log.Printf("Admin %s cleared queue (%d players)", interactionUserID(i), count)
	respondEmbed(s, i, embeds.AdminClear(count), false)
}

// handleAdminRemove removes a specific user from the queue.
func (h *Handler) handleAdminRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		return
	}

	target := options[0].UserValue(nil)
	removed, err := h.service.AdminRemove(context.Background(), target.ID)
	if err != nil {
		log.Printf("Error removing %s from the queue: %v", target.ID, err)
		respondEmbed(s, i, embeds.Error("Queue Error", "An error occurred while removing the player."), true)
		return
	}

	if removed {
		log.Printf("Admin %s removed %s from queue", interactionUserID(i), target.ID)
		respondEmbed(s, i, embeds.AdminRemove(target.ID), false)
		return
	}

	respondEmbed(s, i, embeds.NotInQueue(fmt.Sprintf("<@%s> is not currently in the queue.", target.ID)), false)
}

// handleAdminRefresh forces a rank refresh for every queued player.
func (h *Handler) handleAdminRefresh(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Refreshing hits the remote API once per player, acknowledge first.
	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring the admin refresh response: %v", err)
		return
	}

	ctx := context.Background()

	count, err := h.service.CountQueued(ctx)
	if err != nil {
		log.Printf("Error counting the queue: %v", err)
		followupEmbed(s, i, embeds.Error("Queue Error", "An error occurred while reading the queue."))
		return
	}

	if count == 0 {
		followupEmbed(s, i, embeds.Error("No Players in Queue", "There are no players in the queue to refresh."))
		return
	}

	_, updated, err := h.service.RefreshAllQueued(ctx)
	if err != nil {
		log.Printf("Error refreshing the queued ranks: %v", err)
		followupEmbed(s, i, embeds.Error("Queue Error", "An error occurred while refreshing the ranks."))
		return
	}

	log.Printf("Admin %s force-refreshed %d player ranks", interactionUserID(i), updated)
	followupEmbed(s, i, embeds.AdminRefresh(updated))
}
