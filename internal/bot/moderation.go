package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/moderation"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func denialMessage(denial moderation.Denial) string {
	switch denial {
	case moderation.DeniedSelf:
		return "You cannot target yourself."
	case moderation.DeniedOwner:
		return "The server owner cannot be targeted."
	case moderation.DeniedHierarchy:
		return "That member's highest role is not below yours."
	case moderation.DeniedBotHierarchy:
		return "That member's highest role is not below the bot's."
	default:
		return ""
	}
}

// moderationTarget runs the shared guards for ban and timeout: moderator
// gate, target resolution, and role hierarchy checks.
func (b *Bot) moderationTarget(session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption, title string) (*discordgo.Member, bool) {
	guild := b.guildForID(interaction.GuildID)
	cfg := b.guildConfig(interaction.GuildID)
	if !auth.Moderator(guild, interaction.Member, cfg) {
		b.respondEmbed(session, interaction, b.commandEmbed(title, "You do not have moderation permissions.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return nil, false
	}

	opt, ok := options["user"]
	if !ok {
		b.respondEmbed(session, interaction, b.commandEmbed(title, "Pick a member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return nil, false
	}
	targetUser := opt.UserValue(session)
	if targetUser == nil {
		b.respondEmbed(session, interaction, b.commandEmbed(title, "Pick a member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return nil, false
	}
	target := b.memberForUser(interaction.GuildID, targetUser.ID)
	if target == nil {
		b.respondEmbed(session, interaction, b.commandEmbed(title, "That user is not a member of this server.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return nil, false
	}

	botMember := b.memberForUser(interaction.GuildID, b.botUserID())
	if denial := moderation.CheckTarget(guild, interaction.Member, target, botMember); denial != moderation.Allowed {
		b.respondEmbed(session, interaction, b.commandEmbed(title, denialMessage(denial), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return nil, false
	}
	return target, true
}

func (b *Bot) handleBan(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	target, ok := b.moderationTarget(session, interaction, options, "Ban")
	if !ok {
		return
	}

	reason := "No reason provided"
	if opt, found := options["reason"]; found {
		reason = opt.StringValue()
	}
	deleteDays := 1
	if opt, found := options["delete_days"]; found {
		deleteDays = moderation.ClampDeleteDays(int(opt.IntValue()))
	}

	// The ban revokes DM access, so the notice goes out first. Its outcome
	// is reported but never blocks the ban.
	dmOutcome := "Sent"
	guildName := interaction.GuildID
	if guild := b.guildForID(interaction.GuildID); guild != nil {
		guildName = guild.Name
	}
	notice := b.commandEmbed("You have been banned", fmt.Sprintf("You have been banned from %s. Reason: %s", guildName, reason),
		b.cfg.Notifications.EmbedColors.Error, nil)
	if err := b.dmUser(target.User.ID, notice); err != nil {
		dmOutcome = "Failed"
	}

	if err := session.GuildBanCreateWithReason(interaction.GuildID, target.User.ID, reason, deleteDays); err != nil {
		b.logger.Warn("ban failed", zap.String("target_id", target.User.ID), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed("Ban", "Could not ban that member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	b.audit.Log(ctx, audit.LevelCrit, interaction.GuildID, b.interactionUserID(interaction), target.User.ID, "member_ban", "reason="+reason)
	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: "<@" + target.User.ID + ">", Inline: true},
		{Name: "Reason", Value: reason, Inline: true},
		{Name: "DM notice", Value: dmOutcome, Inline: true},
	}
	if deleteDays > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Messages deleted", Value: fmt.Sprintf("%d days", deleteDays), Inline: true})
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Ban", "Member banned.", b.cfg.Notifications.EmbedColors.Success, fields), false)
}

func (b *Bot) handleTimeout(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	target, ok := b.moderationTarget(session, interaction, options, "Timeout")
	if !ok {
		return
	}

	minutes := 0
	if opt, found := options["minutes"]; found {
		minutes = int(opt.IntValue())
	}
	if !moderation.ValidTimeoutMinutes(minutes) {
		b.respondEmbed(session, interaction, b.commandEmbed("Timeout",
			fmt.Sprintf("Duration must be between 1 and %d minutes.", moderation.MaxTimeoutMinutes),
			b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	reason := ""
	if opt, found := options["reason"]; found {
		reason = opt.StringValue()
	}

	until := moderation.TimeoutUntil(time.Now(), minutes)
	if err := session.GuildMemberTimeout(interaction.GuildID, target.User.ID, &until); err != nil {
		b.logger.Warn("timeout failed", zap.String("target_id", target.User.ID), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed("Timeout", "Could not time out that member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	b.audit.Log(ctx, audit.LevelWarn, interaction.GuildID, b.interactionUserID(interaction), target.User.ID, "member_timeout", fmt.Sprintf("minutes=%d reason=%s", minutes, reason))
	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: "<@" + target.User.ID + ">", Inline: true},
		{Name: "Duration", Value: fmt.Sprintf("%d minutes", minutes), Inline: true},
	}
	if reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason, Inline: false})
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Timeout", "Member timed out.", b.cfg.Notifications.EmbedColors.Success, fields), false)
}

func (b *Bot) handleUntimeout(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	guild := b.guildForID(interaction.GuildID)
	cfg := b.guildConfig(interaction.GuildID)
	if !auth.Moderator(guild, interaction.Member, cfg) {
		b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "You do not have moderation permissions.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	opt, ok := options["user"]
	if !ok || opt.UserValue(session) == nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "Pick a member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	targetUser := opt.UserValue(session)
	target := b.memberForUser(interaction.GuildID, targetUser.ID)
	if target == nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "That user is not a member of this server.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	if !moderation.IsTimedOut(target, time.Now()) {
		b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "That member is not timed out.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	if err := session.GuildMemberTimeout(interaction.GuildID, target.User.ID, nil); err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "Could not lift the timeout.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), target.User.ID, "member_untimeout", "")
	b.respondEmbed(session, interaction, b.commandEmbed("Untimeout", "Timeout lifted for <@"+target.User.ID+">.", b.cfg.Notifications.EmbedColors.Success, nil), false)
}

func (b *Bot) handlePurge(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	guild := b.guildForID(interaction.GuildID)
	cfg := b.guildConfig(interaction.GuildID)
	if !auth.Moderator(guild, interaction.Member, cfg) {
		b.respondEmbed(session, interaction, b.commandEmbed("Purge", "You do not have moderation permissions.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	count := 0
	if opt, ok := options["count"]; ok {
		count = int(opt.IntValue())
	}
	if !moderation.ValidPurgeCount(count) {
		b.respondEmbed(session, interaction, b.commandEmbed("Purge",
			fmt.Sprintf("Count must be between 1 and %d.", moderation.MaxPurgeCount),
			b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	targetUserID := ""
	if opt, ok := options["user"]; ok {
		if user := opt.UserValue(session); user != nil {
			targetUserID = user.ID
		}
	}

	// Over-fetch when filtering by author so the requested count can still
	// be met from a mixed history.
	fetch := count
	if targetUserID != "" {
		fetch = count * 2
		if fetch > moderation.MaxPurgeCount {
			fetch = moderation.MaxPurgeCount
		}
	}
	msgs, err := session.ChannelMessages(interaction.ChannelID, fetch, "", "", "")
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Purge", "Could not read the channel history.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	ids := moderation.SelectPurgeTargets(msgs, count, targetUserID)
	if len(ids) == 0 {
		b.respondEmbed(session, interaction, b.commandEmbed("Purge", "Nothing to delete.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	if err := session.ChannelMessagesBulkDelete(interaction.ChannelID, ids); err != nil {
		b.logger.Warn("purge failed", zap.String("channel_id", interaction.ChannelID), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed("Purge", "Bulk delete failed. Messages older than 14 days cannot be purged.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	detail := fmt.Sprintf("count=%d", len(ids))
	if targetUserID != "" {
		detail += " author=" + targetUserID
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), targetUserID, "messages_purge", detail)
	b.respondEmbed(session, interaction, b.commandEmbed("Purge", fmt.Sprintf("Deleted %d messages.", len(ids)), b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleModRole(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	action := ""
	if opt, ok := options["action"]; ok {
		action = opt.StringValue()
	}
	roleID := ""
	if opt, ok := options["role"]; ok {
		if role := opt.RoleValue(session, interaction.GuildID); role != nil {
			roleID = role.ID
		}
	}

	switch action {
	case "list":
		cfg := b.guildConfig(interaction.GuildID)
		value := "None"
		if len(cfg.ModerationRoleIDs) > 0 {
			mentions := make([]string, 0, len(cfg.ModerationRoleIDs))
			for _, id := range cfg.ModerationRoleIDs {
				mentions = append(mentions, "<@&"+id+">")
			}
			value = strings.Join(mentions, "\n")
		}
		fields := []*discordgo.MessageEmbedField{{Name: "Moderator roles", Value: value, Inline: false}}
		b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Roles that grant moderation commands, on top of native permissions.", b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "add", "remove":
		if roleID == "" {
			b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Pick a role.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			filtered := cfg.ModerationRoleIDs[:0]
			for _, id := range cfg.ModerationRoleIDs {
				if id != roleID {
					filtered = append(filtered, id)
				}
			}
			cfg.ModerationRoleIDs = filtered
			if action == "add" {
				cfg.ModerationRoleIDs = append(cfg.ModerationRoleIDs, roleID)
			}
		})
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "mod_role_"+action, "role="+roleID)
		b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Moderator roles updated.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Moderator roles", "Unknown action.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}
