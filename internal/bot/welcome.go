package bot

import (
	"context"
	"fmt"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) onGuildMemberAdd(session *discordgo.Session, event *discordgo.GuildMemberAdd) {
	if event.GuildID == "" || event.User == nil || event.User.Bot {
		return
	}
	cfg := b.guildConfig(event.GuildID)
	if cfg.WelcomeChannelID == "" {
		return
	}

	memberCount := 0
	if guild := b.guildForID(event.GuildID); guild != nil {
		memberCount = guild.MemberCount
	}

	embed := b.commandEmbed("Welcome!",
		fmt.Sprintf("Welcome <@%s>! Make yourself at home and check the rules.", event.User.ID),
		b.cfg.Notifications.EmbedColors.Primary, nil)
	if memberCount > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Member #%d", memberCount)}
	}
	if avatar := event.User.AvatarURL("128"); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}

	if _, err := session.ChannelMessageSendEmbed(cfg.WelcomeChannelID, embed); err != nil {
		b.logger.Warn("welcome message failed", zap.String("guild_id", event.GuildID), zap.Error(err))
	}
}

func (b *Bot) handleWelcome(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	_ = ctx
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	action := ""
	if opt, ok := options["action"]; ok {
		action = opt.StringValue()
	}

	switch action {
	case "view":
		cfg := b.guildConfig(interaction.GuildID)
		value := "Disabled"
		if cfg.WelcomeChannelID != "" {
			value = "<#" + cfg.WelcomeChannelID + ">"
		}
		fields := []*discordgo.MessageEmbedField{{Name: "Channel", Value: value, Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Current welcome configuration.", b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "set":
		channelID := ""
		if opt, ok := options["channel"]; ok {
			if channel := opt.ChannelValue(session); channel != nil {
				channelID = channel.ID
			}
		}
		if channelID == "" {
			b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Pick a channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.WelcomeChannelID = channelID
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		fields := []*discordgo.MessageEmbedField{{Name: "Channel", Value: "<#" + channelID + ">", Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Welcome messages enabled.", b.cfg.Notifications.EmbedColors.Success, fields), true)
	case "preview":
		user := b.interactionUser(interaction)
		if user == nil {
			return
		}
		memberCount := 0
		if guild := b.guildForID(interaction.GuildID); guild != nil {
			memberCount = guild.MemberCount
		}
		preview := b.commandEmbed("Welcome!",
			fmt.Sprintf("Welcome <@%s>! Make yourself at home and check the rules.", user.ID),
			b.cfg.Notifications.EmbedColors.Primary, nil)
		if memberCount > 0 {
			preview.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Member #%d", memberCount)}
		}
		if avatar := user.AvatarURL("128"); avatar != "" {
			preview.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
		}
		b.respondEmbed(session, interaction, preview, true)
	case "disable":
		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.WelcomeChannelID = ""
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Welcome messages disabled.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Welcome", "Unknown action.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}
