package bot

import (
	"context"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/verify"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) handleVerifySetup(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Verification", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	var channelID, roleID, emoji string
	if opt, ok := options["channel"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			channelID = channel.ID
		}
	}
	if opt, ok := options["role"]; ok {
		if role := opt.RoleValue(session, interaction.GuildID); role != nil {
			roleID = role.ID
		}
	}
	if opt, ok := options["emoji"]; ok {
		emoji = opt.StringValue()
	}
	if channelID == "" || roleID == "" {
		b.respondEmbed(session, interaction, b.commandEmbed("Verification", "Pick a channel and a role.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
		cfg.VerificationRoleID = roleID
		cfg.VerificationEmoji = emoji
	}); err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Verification", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	cfg := b.guildConfig(interaction.GuildID)

	prompt := b.commandEmbed("Member verification",
		"React with "+cfg.Emoji()+" to verify yourself and unlock the server.",
		b.cfg.Notifications.EmbedColors.Primary, nil)
	msg, err := session.ChannelMessageSendEmbed(channelID, prompt)
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Verification", "Could not post the verification message.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	if err := session.MessageReactionAdd(channelID, msg.ID, cfg.Emoji()); err != nil {
		b.logger.Warn("verification seed reaction failed", zap.String("message_id", msg.ID), zap.Error(err))
	}

	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "verify_setup", "channel="+channelID+" role="+roleID)
	fields := []*discordgo.MessageEmbedField{
		{Name: "Channel", Value: "<#" + channelID + ">", Inline: true},
		{Name: "Role", Value: "<@&" + roleID + ">", Inline: true},
		{Name: "Emoji", Value: cfg.Emoji(), Inline: true},
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Verification", "Verification message posted.", b.cfg.Notifications.EmbedColors.Success, fields), true)
}

func (b *Bot) reactionMessage(channelID, messageID string) *discordgo.Message {
	msg, err := b.session.State.Message(channelID, messageID)
	if err == nil && msg != nil {
		return msg
	}
	msg, _ = b.session.ChannelMessage(channelID, messageID)
	return msg
}

func (b *Bot) onMessageReactionAdd(session *discordgo.Session, event *discordgo.MessageReactionAdd) {
	if event.GuildID == "" {
		return
	}
	cfg := b.guildConfig(event.GuildID)
	if cfg.VerificationRoleID == "" {
		return
	}
	msg := b.reactionMessage(event.ChannelID, event.MessageID)
	if !verify.Qualifies(b.botUserID(), event.MessageReaction, msg, cfg) {
		return
	}

	member := b.memberForUser(event.GuildID, event.UserID)
	if verify.HasRole(member, cfg.VerificationRoleID) {
		return
	}
	if err := session.GuildMemberRoleAdd(event.GuildID, event.UserID, cfg.VerificationRoleID); err != nil {
		b.logger.Warn("verification role add failed", zap.String("user_id", event.UserID), zap.Error(err))
		return
	}

	// DM failure means closed DMs, not a failed verification.
	confirm := b.commandEmbed("Verified", "You are now verified. Welcome!", b.cfg.Notifications.EmbedColors.Success, nil)
	_ = b.dmUser(event.UserID, confirm)

	b.audit.Log(context.Background(), audit.LevelInfo, event.GuildID, event.UserID, event.UserID, "member_verified", "")
}

func (b *Bot) onMessageReactionRemove(session *discordgo.Session, event *discordgo.MessageReactionRemove) {
	if event.GuildID == "" {
		return
	}
	cfg := b.guildConfig(event.GuildID)
	if cfg.VerificationRoleID == "" {
		return
	}
	msg := b.reactionMessage(event.ChannelID, event.MessageID)
	if !verify.Qualifies(b.botUserID(), event.MessageReaction, msg, cfg) {
		return
	}

	member := b.memberForUser(event.GuildID, event.UserID)
	if !verify.HasRole(member, cfg.VerificationRoleID) {
		return
	}
	if err := session.GuildMemberRoleRemove(event.GuildID, event.UserID, cfg.VerificationRoleID); err != nil {
		b.logger.Warn("verification role remove failed", zap.String("user_id", event.UserID), zap.Error(err))
		return
	}
	b.audit.Log(context.Background(), audit.LevelInfo, event.GuildID, event.UserID, event.UserID, "member_unverified", "")
}
