// Package embeds builds every Discord embed sent by the bot.
package embeds

import (
	"fmt"
	"strings"
	"time"

	"owqueue/bot/services/queue"
	"owqueue/pkg/battletag"
	"owqueue/pkg/messages"
	"owqueue/pkg/ranks"

	"github.com/bwmarrin/discordgo"
)

// Embed colors for the generic messages.
const (
	colorBlurple = 0x5865F2
	colorGreen   = 0x2ECC71
	colorBlue    = 0x3498DB
	colorOrange  = 0xF39C12
	colorRed     = 0xE74C3C
	colorGray    = 0x95A5A6
	colorPurple  = 0x9B59B6
)

// Discord limits a field value to 1024 characters.
const fieldValueLimit = 1024

// QueueStatus builds the queue status embed, grouped by rank.
func QueueStatus(groups []queue.TierGroup, totalPlayers int, refreshEvery time.Duration) *discordgo.MessageEmbed {
	// The color follows the highest rank present on the queue.
	color := colorBlurple
	if len(groups) > 0 {
		if rankColor, ok := ranks.Colors[groups[0].Rank]; ok {
			color = rankColor
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "SA Queue Status",
		Color: color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf(messages.RanksRefreshFooter, int(refreshEvery.Minutes())),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if totalPlayers == 0 {
		embed.Description = "No players currently in queue.\nUse `/queue` to join!"
	} else {
		playerWord := "players"
		if totalPlayers == 1 {
			playerWord = "player"
		}
		embed.Description = fmt.Sprintf("**%d** %s looking for a match", totalPlayers, playerWord)
	}

	// One field per rank, from the highest to the lowest.
	for _, group := range groups {
		mentions := make([]string, 0, len(group.Members))
		for _, member := range group.Members {
			mentions = append(mentions, "<@"+member.DiscordID+">")
		}

		value := strings.Join(mentions, ", ")
		if len(value) > fieldValueLimit {
			value = value[:fieldValueLimit-4] + "..."
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s (%d)", ranks.Emojis[group.Rank], ranks.DisplayNames[group.Rank], len(group.Members)),
			Value:  value,
			Inline: false,
		})
	}

	return embed
}

// RegistrationSuccess builds the embed for a successful registration.
func RegistrationSuccess(tag string, rank string, isUpdate bool) *discordgo.MessageEmbed {
	action := "registered"
	if isUpdate {
		action = "updated"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Registration Successful",
		Description: fmt.Sprintf("Your BattleTag has been %s!", action),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "BattleTag", Value: battletag.ToDisplay(tag), Inline: true},
			{Name: "Rank", Value: ranks.FormatDisplay(rank), Inline: true},
		},
	}

	if rank == ranks.Unknown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Note",
			Value:  "Could not fetch your rank. This may be because your profile is private or the BattleTag was not found.",
			Inline: false,
		})
	}

	return embed
}

// RegistrationError builds the embed for registration errors.
func RegistrationError(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Registration Failed",
		Description: message,
		Color:       colorRed,
	}
}

// QueueJoin builds the embed for successfully joining the queue.
func QueueJoin(maxAge time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Joined Queue",
		Description: "You are now in the queue! Use `/status` to see who else is looking for a match.",
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Auto-Timeout",
				Value:  fmt.Sprintf("You will be automatically removed after %d hours. Re-queue to reset the timer.", int(maxAge.Hours())),
				Inline: false,
			},
		},
	}
}

// QueueRefresh builds the embed for a queue time refresh.
func QueueRefresh(maxAge time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Queue Refreshed",
		Description: fmt.Sprintf("Your queue timer has been reset. You will remain in queue for another %d hours.", int(maxAge.Hours())),
		Color:       colorBlue,
	}
}

// QueueLeave builds the embed for leaving the queue.
func QueueLeave() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Left Queue",
		Description: "You have been removed from the queue.",
		Color:       colorOrange,
	}
}

// NotInQueue builds the embed for acting on a player that isn't queued.
func NotInQueue(description string) *discordgo.MessageEmbed {
	if description == "" {
		description = "You are not currently in the queue."
	}
	return &discordgo.MessageEmbed{
		Title:       "Not in Queue",
		Description: description,
		Color:       colorGray,
	}
}

// NotRegistered builds the embed asking the player to register first.
func NotRegistered() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Not Registered",
		Description: "You need to register your BattleTag first!\nUse `/register <battletag>` (e.g., `/register Player#1234`)",
		Color:       colorRed,
	}
}

// AdminClear builds the embed for the queue clear command.
func AdminClear(count int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Queue Cleared",
		Description: fmt.Sprintf("Removed **%d** player(s) from the queue.", count),
		Color:       colorPurple,
	}
}

// AdminRemove builds the embed for an admin removing a player.
func AdminRemove(userID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Player Removed",
		Description: fmt.Sprintf("Removed <@%s> from the queue.", userID),
		Color:       colorPurple,
	}
}

// AdminRefresh builds the embed for a forced rank refresh.
func AdminRefresh(count int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Ranks Refreshed",
		Description: fmt.Sprintf("Updated ranks for **%d** queued player(s).", count),
		Color:       colorPurple,
	}
}

// Help builds the help embed with all the commands.
func Help() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "SA Queue Tracker - Help",
		Description: "Track Overwatch 2 queue times for South American servers.",
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "User Commands",
				Value: "`/register <battletag>` - Register your BattleTag (e.g., Player#1234)\n" +
					"`/queue` - Join the queue (24h timeout, re-queue to refresh)\n" +
					"`/unqueue` - Leave the queue\n" +
					"`/status` - Show current queue status by rank\n" +
					"`/help` - Show this help message",
				Inline: false,
			},
			{
				Name: "Admin Commands",
				Value: "`/admin clear` - Clear the entire queue\n" +
					"`/admin remove <user>` - Remove a user from the queue\n" +
					"`/admin refresh` - Force refresh all queued player ranks",
				Inline: false,
			},
			{
				Name: "How It Works",
				Value: "1. Register your BattleTag to link your Overwatch 2 account\n" +
					"2. Use `/queue` when you start looking for a match\n" +
					"3. Use `/unqueue` when you're done playing\n" +
					"4. Check `/status` to see who else is queuing\n\n" +
					"Ranks are fetched from your public profile and refresh every 10 minutes. " +
					"Queue status is automatically posted every 10 minutes.",
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "All commands work in server channels and DMs",
		},
	}
}

// Error builds a generic error embed.
func Error(title string, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorRed,
	}
}

// Success builds a generic success embed.
func Success(title string, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorGreen,
	}
}
