// Package commands implements the slash command surface of the bot.
// Handlers stay thin: validate the input, call the queue service and render
// an embed.
package commands

import (
	"time"

	"owqueue/bot/services/queue"

	"github.com/bwmarrin/discordgo"
)

// Handler routes the slash command interactions to the queue service.
type Handler struct {
	service      *queue.Service
	refreshEvery time.Duration
	maxAge       time.Duration
}

// New creates the command handler.
func New(service *queue.Service, refreshEvery time.Duration, maxAge time.Duration) *Handler {
	return &Handler{
		service:      service,
		refreshEvery: refreshEvery,
		maxAge:       maxAge,
	}
}

// Definitions returns every application command registered by the bot.
func (h *Handler) Definitions() []*discordgo.ApplicationCommand {
	adminPermissions := int64(discordgo.PermissionAdministrator)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register your BattleTag to track your rank",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "battletag",
					Description: "Your BattleTag (e.g., Player#1234)",
					Required:    true,
				},
			},
		},
		{
			Name:        "queue",
			Description: "Join the queue to find other players",
		},
		{
			Name:        "unqueue",
			Description: "Leave the queue",
		},
		{
			Name:        "status",
			Description: "Show current queue status",
		},
		{
			Name:        "help",
			Description: "Show help information and available commands",
		},
		{
			Name:                     "admin",
			Description:              "Administrative commands for queue management",
			DefaultMemberPermissions: &adminPermissions,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear all players from the queue",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a specific user from the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "The user to remove from the queue",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "refresh",
					Description: "Force refresh ranks for all queued players",
				},
			},
		},
	}
}

// HandleInteraction dispatches an interaction to the matching handler.
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "register":
		h.handleRegister(s, i)
	case "queue":
		h.handleQueue(s, i)
	case "unqueue":
		h.handleUnqueue(s, i)
	case "status":
		h.handleStatus(s, i)
	case "help":
		h.handleHelp(s, i)
	case "admin":
		if len(data.Options) == 0 {
			return
		}
		switch data.Options[0].Name {
		case "clear":
			h.handleAdminClear(s, i)
		case "remove":
			h.handleAdminRemove(s, i)
		case "refresh":
			h.handleAdminRefresh(s, i)
		}
	}
}

// interactionUserID returns the invoking user, both on guilds and DMs.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// respondEmbed sends an immediate embed response.
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
}

// deferResponse acknowledges the interaction while a slow handler works.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// followupEmbed sends an embed after a deferred response.
func followupEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}
