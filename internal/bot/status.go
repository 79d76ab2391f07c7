package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/status"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) startStatusPoller() {
	interval := time.Duration(b.cfg.Status.IntervalMinutes) * time.Minute
	go func() {
		select {
		case <-time.After(30 * time.Second):
		case <-b.stopPoll:
			return
		}
		b.pollStatus()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.pollStatus()
			case <-b.stopPoll:
				return
			}
		}
	}()
}

// pollStatus pushes the current report to every tracked message each cycle,
// even when nothing changed, so the embed timestamp shows the monitor is
// alive.
func (b *Bot) pollStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	report, err := b.status.Fetch(ctx)
	if err != nil {
		b.logger.Warn("status poll failed", zap.Error(err))
		return
	}

	if b.session == nil || b.session.State == nil {
		return
	}
	for _, guild := range b.session.State.Guilds {
		if guild == nil {
			continue
		}
		b.publishStatus(guild.ID, report)
	}
}

// publishStatus edits the guild's tracked status message in place. A gone
// tracked message has its tracking entry pruned; the next cycle posts a
// fresh one. Other edit failures are logged and left for the next cycle.
func (b *Bot) publishStatus(guildID string, report status.Report) {
	cfg := b.guildConfig(guildID)
	if cfg.FivemStatusChannelID == "" {
		return
	}
	embed := b.statusEmbed(report)

	if cfg.FivemStatusMessageID != "" {
		_, err := b.session.ChannelMessageEditEmbed(cfg.FivemStatusChannelID, cfg.FivemStatusMessageID, embed)
		if err == nil {
			return
		}
		if !isUnknownMessage(err) && !isUnknownChannel(err) {
			b.logger.Warn("status message edit failed", zap.String("guild_id", guildID), zap.Error(err))
			return
		}
		if err := b.store.Update(guildID, func(cfg *store.GuildConfig) {
			cfg.FivemStatusMessageID = ""
		}); err != nil {
			b.logger.Warn("status tracking prune failed", zap.String("guild_id", guildID), zap.Error(err))
		}
		return
	}

	msg, err := b.session.ChannelMessageSendEmbed(cfg.FivemStatusChannelID, embed)
	if err != nil {
		b.logger.Warn("status message send failed", zap.String("guild_id", guildID), zap.Error(err))
		return
	}
	if err := b.store.Update(guildID, func(cfg *store.GuildConfig) {
		cfg.FivemStatusMessageID = msg.ID
	}); err != nil {
		b.logger.Warn("status message track failed", zap.String("guild_id", guildID), zap.Error(err))
	}
}

func (b *Bot) statusEmbed(report status.Report) *discordgo.MessageEmbed {
	color := b.cfg.Notifications.EmbedColors.Success
	switch report.Overall {
	case status.StateMajorOutage:
		color = b.cfg.Notifications.EmbedColors.Error
	case status.StateDegraded, status.StatePartialOutage, status.StateMaintenance:
		color = b.cfg.Notifications.EmbedColors.Warning
	case status.StateUnknown:
		color = b.cfg.Notifications.EmbedColors.Info
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(report.Services))
	for _, svc := range report.Services {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   svc.Name,
			Value:  svc.State.Emoji() + " " + svc.State.String(),
			Inline: true,
		})
	}

	embed := b.commandEmbed("FiveM platform status", report.Overall.Emoji()+" "+report.Overall.String(), color, fields)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Source: " + b.cfg.Status.URL}
	return embed
}

func (b *Bot) handleStatusShow(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	report, err := b.status.Fetch(fetchCtx)
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("FiveM platform status", "The status page could not be reached.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.respondEmbed(session, interaction, b.statusEmbed(report), true)
}

func (b *Bot) handleStatusSetup(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	action := "set"
	if opt, ok := options["action"]; ok {
		action = opt.StringValue()
	}

	switch action {
	case "set":
		channelID := ""
		if opt, ok := options["channel"]; ok {
			if channel := opt.ChannelValue(session); channel != nil {
				channelID = channel.ID
			}
		}
		if channelID == "" {
			b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Pick a channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}

		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.FivemStatusChannelID = channelID
			cfg.FivemStatusMessageID = ""
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}

		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "status_setup", "channel="+channelID)
		b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Status updates will be posted in <#"+channelID+">.", b.cfg.Notifications.EmbedColors.Success, nil), true)

		guildID := interaction.GuildID
		go func() {
			fetchCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			report, err := b.status.Fetch(fetchCtx)
			if err != nil {
				b.logger.Warn("status bootstrap fetch failed", zap.Error(err))
				return
			}
			b.publishStatus(guildID, report)
		}()
	case "disable":
		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.FivemStatusChannelID = ""
			cfg.FivemStatusMessageID = ""
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "status_disable", "")
		b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Status updates disabled.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	case "view":
		cfg := b.guildConfig(interaction.GuildID)
		channel := "Disabled"
		if cfg.FivemStatusChannelID != "" {
			channel = "<#" + cfg.FivemStatusChannelID + ">"
		}
		fields := []*discordgo.MessageEmbedField{
			{Name: "Channel", Value: channel, Inline: true},
			{Name: "Source", Value: b.cfg.Status.URL, Inline: true},
			{Name: "Interval", Value: fmt.Sprintf("%d minutes", b.cfg.Status.IntervalMinutes), Inline: true},
		}
		b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Current status monitor configuration.", b.cfg.Notifications.EmbedColors.Info, fields), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Status setup", "Unknown action.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}
