package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"owqueue/bot/embeds"
	"owqueue/pkg/battletag"

	"github.com/bwmarrin/discordgo"
)

// handleRegister validates the battletag, fetches the rank and stores the
// registration.
func (h *Handler) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// The rank fetch can take a while, acknowledge first.
	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring the register response: %v", err)
		return
	}

	data := i.ApplicationCommandData()
	rawBattletag := data.Options[0].StringValue()
	discordID := interactionUserID(i)

	created, rank, err := h.service.Register(context.Background(), discordID, rawBattletag)

	if errors.Is(err, battletag.ErrInvalidBattletag) {
		embed := embeds.RegistrationError(fmt.Sprintf(
			"Invalid BattleTag format: `%s`\n\nPlease use the format `Username#1234`\nExample: `/register Player#1234`",
			rawBattletag,
		))
		followupEmbed(s, i, embed)
		return
	}

	if err != nil {
		log.Printf("Database error during registration: %v", err)
		embed := embeds.RegistrationError("An error occurred while saving your registration. Please try again later.")
		followupEmbed(s, i, embed)
		return
	}

	action := "Registered"
	if !created {
		action = "Updated"
	}
	log.Printf("%s player: %s -> %s (%s)", action, discordID, rawBattletag, rank)

	followupEmbed(s, i, embeds.RegistrationSuccess(rawBattletag, rank, !created))
}
