package bot

import (
	"context"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/ticket"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(session, interaction)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(session, interaction)
	}
}

func (b *Bot) handleCommand(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.GuildID == "" {
		b.respondEmbed(session, interaction, b.commandEmbed("Unavailable", "This command only works inside a server.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	ctx := context.Background()
	data := interaction.ApplicationCommandData()
	options := optionMap(data.Options)

	switch data.Name {
	case "new":
		b.handleTicketCreate(ctx, session, interaction)
	case "close":
		b.handleTicketClose(ctx, session, interaction)
	case "rename":
		b.handleTicketRename(ctx, session, interaction, options)
	case "add":
		b.handleTicketAdd(ctx, session, interaction, options)
	case "remove":
		b.handleTicketRemove(ctx, session, interaction, options)
	case "ticket-ping":
		b.handleTicketPing(ctx, session, interaction, options)
	case "ticket-setup":
		b.handleTicketSetup(ctx, session, interaction, options)
	case "ticket-staff":
		b.handleTicketStaff(ctx, session, interaction, options)
	case "ticket-transcripts":
		b.handleTicketTranscripts(ctx, session, interaction, options)
	case "ticket-info":
		b.handleTicketInfo(ctx, session, interaction)
	case "ticket-panel":
		b.handleTicketPanel(ctx, session, interaction)
	case "ban":
		b.handleBan(ctx, session, interaction, options)
	case "timeout":
		b.handleTimeout(ctx, session, interaction, options)
	case "untimeout":
		b.handleUntimeout(ctx, session, interaction, options)
	case "purge":
		b.handlePurge(ctx, session, interaction, options)
	case "mod-role":
		b.handleModRole(ctx, session, interaction, options)
	case "verify-setup":
		b.handleVerifySetup(ctx, session, interaction, options)
	case "welcome":
		b.handleWelcome(ctx, session, interaction, options)
	case "fivem-status":
		b.handleStatusShow(ctx, session, interaction)
	case "fivem-status-setup":
		b.handleStatusSetup(ctx, session, interaction, options)
	case "verify-purchase":
		b.handlePurchaseVerify(ctx, session, interaction, options)
	case "tebex-setup":
		b.handleTebexSetup(ctx, session, interaction, options)
	case "ping":
		b.handlePing(session, interaction)
	case "server-info":
		b.handleServerInfo(session, interaction)
	case "server-logo":
		b.handleServerLogo(session, interaction)
	case "add-role-all":
		b.handleAddRoleAll(ctx, session, interaction, options)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Unknown", "Unknown command.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

func (b *Bot) handleComponent(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.GuildID == "" {
		return
	}
	ctx := context.Background()
	switch interaction.MessageComponentData().CustomID {
	case ticket.CreateButtonID:
		b.handleTicketCreate(ctx, session, interaction)
	case ticket.CloseButtonID:
		b.handleTicketClose(ctx, session, interaction)
	}
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (b *Bot) interactionUser(interaction *discordgo.InteractionCreate) *discordgo.User {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User
	}
	return interaction.User
}

// interactionUserID is the safe variant for audit trails, where a blank
// actor beats a dropped entry.
func (b *Bot) interactionUserID(interaction *discordgo.InteractionCreate) string {
	if user := b.interactionUser(interaction); user != nil {
		return user.ID
	}
	return ""
}
