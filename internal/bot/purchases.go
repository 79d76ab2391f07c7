package bot

import (
	"context"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/tebex"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) handlePurchaseVerify(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	transactionID := ""
	if opt, ok := options["transaction"]; ok {
		transactionID = opt.StringValue()
	}

	if !tebex.ValidID(transactionID) {
		b.respondEmbed(session, interaction, b.commandEmbed("Purchase verification",
			"That does not look like a transaction ID. It should look like tbx-26929a56124-3f0a99.",
			b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	result := b.tebex.Verify(verifyCtx, transactionID, user.ID)

	switch {
	case result.Duplicated:
		b.respondEmbed(session, interaction, b.commandEmbed("Purchase verification",
			"This transaction ID has already been redeemed.",
			b.cfg.Notifications.EmbedColors.Error, nil), true)
		b.audit.Log(ctx, audit.LevelWarn, interaction.GuildID, user.ID, result.AlreadyBy, "purchase_duplicate", "id="+transactionID)
		return
	case result.Status == tebex.StatusUnreachable:
		b.respondEmbed(session, interaction, b.commandEmbed("Purchase verification",
			"The store could not be reached. Your ID was not consumed, try again later.",
			b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	case result.Status != tebex.StatusValid:
		b.respondEmbed(session, interaction, b.commandEmbed("Purchase verification",
			"The store does not recognize this transaction as a completed payment.",
			b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	cfg := b.guildConfig(interaction.GuildID)
	if cfg.TebexVerifiedRoleID != "" {
		if err := session.GuildMemberRoleAdd(interaction.GuildID, user.ID, cfg.TebexVerifiedRoleID); err != nil {
			b.logger.Warn("purchase role add failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	if cfg.TebexLogChannelID != "" {
		fields := []*discordgo.MessageEmbedField{
			{Name: "Member", Value: "<@" + user.ID + ">", Inline: true},
			{Name: "Transaction", Value: transactionID, Inline: true},
			{Name: "Store", Value: b.cfg.Tebex.StoreName, Inline: true},
		}
		logEmbed := b.commandEmbed("Purchase verified", "A store purchase was verified.", b.cfg.Notifications.EmbedColors.Success, fields)
		if _, err := session.ChannelMessageSendEmbed(cfg.TebexLogChannelID, logEmbed); err != nil {
			b.logger.Warn("purchase log failed", zap.String("channel_id", cfg.TebexLogChannelID), zap.Error(err))
		}
	}

	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, user.ID, user.ID, "purchase_verified", "id="+transactionID)
	b.respondEmbed(session, interaction, b.commandEmbed("Purchase verification",
		"Purchase confirmed, thank you for supporting "+b.cfg.Tebex.StoreName+"!",
		b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleTebexSetup(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Store setup", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	roleID := ""
	if opt, ok := options["role"]; ok {
		if role := opt.RoleValue(session, interaction.GuildID); role != nil {
			roleID = role.ID
		}
	}
	logChannelID := ""
	if opt, ok := options["log_channel"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			logChannelID = channel.ID
		}
	}

	// With no options this shows the current configuration.
	if roleID == "" && logChannelID == "" {
		cfg := b.guildConfig(interaction.GuildID)
		role := "Not set"
		if cfg.TebexVerifiedRoleID != "" {
			role = "<@&" + cfg.TebexVerifiedRoleID + ">"
		}
		logChannel := "Not set"
		if cfg.TebexLogChannelID != "" {
			logChannel = "<#" + cfg.TebexLogChannelID + ">"
		}
		fields := []*discordgo.MessageEmbedField{
			{Name: "Store", Value: b.cfg.Tebex.StoreName, Inline: true},
			{Name: "Verified role", Value: role, Inline: true},
			{Name: "Log channel", Value: logChannel, Inline: true},
		}
		b.respondEmbed(session, interaction, b.commandEmbed("Store setup", "Current purchase verification configuration.", b.cfg.Notifications.EmbedColors.Info, fields), true)
		return
	}

	if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
		if roleID != "" {
			cfg.TebexVerifiedRoleID = roleID
		}
		if logChannelID != "" {
			cfg.TebexLogChannelID = logChannelID
		}
	}); err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Store setup", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "tebex_setup", "role="+roleID+" log="+logChannelID)
	b.respondEmbed(session, interaction, b.commandEmbed("Store setup", "Purchase verification configured.", b.cfg.Notifications.EmbedColors.Success, nil), true)
}
