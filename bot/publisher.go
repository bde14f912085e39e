package main

import (
	"time"

	"owqueue/bot/embeds"
	"owqueue/bot/services/queue"

	"github.com/bwmarrin/discordgo"
)

// discordPublisher posts the queue status embed on the configured channel.
type discordPublisher struct {
	session      *discordgo.Session
	channelID    string
	refreshEvery time.Duration
}

// PublishQueueStatus renders and sends the aggregated queue status.
func (p *discordPublisher) PublishQueueStatus(groups []queue.TierGroup, totalPlayers int) error {
	embed := embeds.QueueStatus(groups, totalPlayers, p.refreshEvery)
	_, err := p.session.ChannelMessageSendEmbed(p.channelID, embed)
	return err
}
