package commands

import (
	"log"

	"owqueue/bot/embeds"

	"github.com/bwmarrin/discordgo"
)

// handleHelp shows the command reference.
func (h *Handler) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := respondEmbed(s, i, embeds.Help(), false); err != nil {
		log.Printf("Error sending the help embed: %v", err)
	}
}
