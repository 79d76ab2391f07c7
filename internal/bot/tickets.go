package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/ticket"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/transcript"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) channelForID(channelID string) *discordgo.Channel {
	channel, err := b.session.State.Channel(channelID)
	if err == nil && channel != nil {
		return channel
	}
	channel, _ = b.session.Channel(channelID)
	return channel
}

func hasMemberOverwrite(channel *discordgo.Channel, userID string) bool {
	if channel == nil {
		return false
	}
	for _, ow := range channel.PermissionOverwrites {
		if ow != nil && ow.Type == discordgo.PermissionOverwriteTypeMember && ow.ID == userID {
			return true
		}
	}
	return false
}

func isUnknownChannel(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	return restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownChannel
}

func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	return restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage
}

func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == discordgo.ErrCodeMissingAccess ||
		restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser
}

func (b *Bot) handleTicketCreate(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	guildID := interaction.GuildID
	cfg := b.guildConfig(guildID)

	name := ticket.ChannelName(user)

	// The name convention is the one-open-ticket-per-user guard. When the
	// listing fails the guard cannot run, so creation fails closed.
	channels, err := session.GuildChannels(guildID)
	if err != nil {
		b.logger.Warn("ticket channel listing failed", zap.String("guild_id", guildID), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "Could not create the ticket channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	if existing := ticket.FindByName(channels, name); existing != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "You already have an open ticket: <#"+existing.ID+">", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	display := user.GlobalName
	if interaction.Member != nil && interaction.Member.Nick != "" {
		display = interaction.Member.Nick
	}
	if display == "" {
		display = user.Username
	}

	created, err := session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                ticket.Topic(display, user.ID),
		ParentID:             cfg.TicketCategoryID,
		PermissionOverwrites: ticket.Overwrites(guildID, user.ID, b.botUserID(), cfg.StaffRoleIDs),
	})
	if err != nil {
		b.logger.Warn("ticket create failed", zap.String("guild_id", guildID), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "Could not create the ticket channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if mentions := b.resolvedStaffMentions(guildID, cfg.StaffRoleIDs); len(mentions) > 0 {
		_, _ = session.ChannelMessageSend(created.ID, strings.Join(mentions, " "))
	}

	welcome := b.commandEmbed("Support ticket",
		fmt.Sprintf("Hello <@%s>, describe your issue and the team will respond. Use the button below or /close to close the ticket.", user.ID),
		b.cfg.Notifications.EmbedColors.Primary, nil)
	_, _ = session.ChannelMessageSendComplex(created.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{welcome},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close ticket",
					Style:    discordgo.DangerButton,
					CustomID: ticket.CloseButtonID,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
				},
			}},
		},
	})

	b.audit.Log(ctx, audit.LevelInfo, guildID, user.ID, user.ID, "ticket_create", "channel="+created.ID)
	b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "Your ticket is ready: <#"+created.ID+">", b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleTicketClose(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	channel := b.channelForID(interaction.ChannelID)
	if !ticket.IsTicket(channel) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "This channel is not a ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	cfg := b.guildConfig(interaction.GuildID)
	ownerID := ticket.OwnerID(channel.Topic)
	perms := b.channelPermissions(channel.ID, user.ID)
	if !auth.TicketManager(ownerID, interaction.Member, cfg, perms) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket", "You cannot close this ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	delay := time.Duration(b.cfg.Ticket.CloseDelaySeconds) * time.Second
	b.respondEmbed(session, interaction, b.commandEmbed("Closing ticket",
		fmt.Sprintf("Saving the transcript, this channel will be deleted in %d seconds.", b.cfg.Ticket.CloseDelaySeconds),
		b.cfg.Notifications.EmbedColors.Warning, nil), false)

	b.archiveTicket(ctx, channel, ownerID, user.ID, cfg.TranscriptChannelID)

	guildID := interaction.GuildID
	channelID := channel.ID
	b.sched.Schedule("ticket-delete:"+channelID, delay, func() {
		if _, err := b.session.ChannelDelete(channelID); err != nil && !isUnknownChannel(err) {
			b.logger.Warn("ticket delete failed", zap.String("channel_id", channelID), zap.Error(err))
			return
		}
		b.audit.Log(context.Background(), audit.LevelInfo, guildID, user.ID, ownerID, "ticket_close", "channel="+channelID)
	})
}

// archiveTicket builds the transcript and delivers it to the configured
// transcript channel and to the owner's DMs. Either delivery may fail
// without blocking the close.
func (b *Bot) archiveTicket(ctx context.Context, channel *discordgo.Channel, ownerID, actorID, transcriptChannelID string) {
	_ = ctx
	msgs, err := b.fetchAllMessages(channel.ID)
	if err != nil {
		b.logger.Warn("transcript fetch failed", zap.String("channel_id", channel.ID), zap.Error(err))
		if transcriptChannelID != "" {
			_, _ = b.session.ChannelMessageSend(transcriptChannelID, transcript.UnavailableNotice(channel.Name))
		}
		return
	}

	meta := transcript.Meta{
		ChannelName: channel.Name,
		OwnerID:     ownerID,
		ClosedAt:    time.Now(),
	}
	if created, err := discordgo.SnowflakeTimestamp(channel.ID); err == nil {
		meta.CreatedAt = created
	}
	if owner := b.memberForUser(channel.GuildID, ownerID); owner != nil && owner.User != nil {
		meta.OwnerName = owner.User.Username
		meta.OwnerDisplay = owner.User.GlobalName
		if owner.Nick != "" {
			meta.OwnerDisplay = owner.Nick
		}
		if meta.OwnerDisplay == "" {
			meta.OwnerDisplay = owner.User.Username
		}
	}

	body := transcript.Build(meta, msgs)
	fileName := transcript.FileName(channel.Name)

	summary := b.commandEmbed("Ticket closed", fmt.Sprintf("Ticket #%s closed by <@%s>.", channel.Name, actorID),
		b.cfg.Notifications.EmbedColors.Info, []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: "<@" + ownerID + ">", Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", len(msgs)), Inline: true},
		})

	if transcriptChannelID != "" {
		_, err := b.session.ChannelMessageSendComplex(transcriptChannelID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{summary},
			Files: []*discordgo.File{{
				Name:        fileName,
				ContentType: "text/plain",
				Reader:      strings.NewReader(body),
			}},
		})
		if err != nil {
			b.logger.Warn("transcript post failed", zap.String("channel_id", transcriptChannelID), zap.Error(err))
		}
	}

	if ownerID != "" {
		dm, err := b.session.UserChannelCreate(ownerID)
		if err == nil {
			_, err = b.session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
				Embeds: []*discordgo.MessageEmbed{summary},
				Files: []*discordgo.File{{
					Name:        fileName,
					ContentType: "text/plain",
					Reader:      strings.NewReader(body),
				}},
			})
		}
		if err != nil {
			if !isForbidden(err) {
				b.logger.Warn("transcript DM failed", zap.String("user_id", ownerID), zap.Error(err))
			}
			if transcriptChannelID != "" {
				_, _ = b.session.ChannelMessageSend(transcriptChannelID,
					fmt.Sprintf("Could not DM the transcript to <@%s>.", ownerID))
			}
		}
	}
}

// fetchAllMessages pages through the channel history and returns it oldest
// first, ready for the transcript builder.
func (b *Bot) fetchAllMessages(channelID string) ([]*discordgo.Message, error) {
	var all []*discordgo.Message
	before := ""
	for {
		batch, err := b.session.ChannelMessages(channelID, 100, before, "", "")
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		before = batch[len(batch)-1].ID
		if len(batch) < 100 {
			break
		}
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (b *Bot) handleTicketRename(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	channel := b.channelForID(interaction.ChannelID)
	if !ticket.IsTicket(channel) {
		b.respondEmbed(session, interaction, b.commandEmbed("Rename", "This channel is not a ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	cfg := b.guildConfig(interaction.GuildID)
	if !auth.Staff(interaction.Member, cfg) {
		b.respondEmbed(session, interaction, b.commandEmbed("Rename", "Only staff can rename tickets.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	raw := ""
	if opt, ok := options["name"]; ok {
		raw = opt.StringValue()
	}
	name, ok := ticket.NormalizeName(raw)
	if !ok {
		b.respondEmbed(session, interaction, b.commandEmbed("Rename", "That name has no usable characters.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if _, err := session.ChannelEdit(channel.ID, &discordgo.ChannelEdit{Name: name}); err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Rename", "Could not rename the channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "ticket_rename", "name="+name)
	b.respondEmbed(session, interaction, b.commandEmbed("Rename", "Ticket renamed to "+name+".", b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleTicketAdd(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	channel := b.channelForID(interaction.ChannelID)
	if !ticket.IsTicket(channel) {
		b.respondEmbed(session, interaction, b.commandEmbed("Add", "This channel is not a ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	cfg := b.guildConfig(interaction.GuildID)
	ownerID := ticket.OwnerID(channel.Topic)
	if !auth.TicketManager(ownerID, interaction.Member, cfg, b.channelPermissions(channel.ID, user.ID)) {
		b.respondEmbed(session, interaction, b.commandEmbed("Add", "You cannot manage this ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	raw := ""
	if opt, ok := options["users"]; ok {
		raw = opt.StringValue()
	}
	members := b.guildMembers(interaction.GuildID)
	targets := ticket.ResolveTargets(raw, members)
	if len(targets) == 0 {
		b.respondEmbed(session, interaction, b.commandEmbed("Add", "No matching members found.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	var added []string
	skipped := 0
	for _, target := range targets {
		if hasMemberOverwrite(channel, target.User.ID) {
			skipped++
			continue
		}
		if err := session.ChannelPermissionSet(channel.ID, target.User.ID, discordgo.PermissionOverwriteTypeMember, ticket.MemberAllow(), 0); err != nil {
			b.logger.Warn("ticket add failed", zap.String("user_id", target.User.ID), zap.Error(err))
			continue
		}
		added = append(added, "<@"+target.User.ID+">")
	}
	if len(added) == 0 {
		if skipped > 0 {
			b.respondEmbed(session, interaction, b.commandEmbed("Add", "Those members are already in the ticket.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
			return
		}
		b.respondEmbed(session, interaction, b.commandEmbed("Add", "Could not add anyone to the ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, user.ID, "", "ticket_add", fmt.Sprintf("count=%d", len(added)))
	b.respondEmbed(session, interaction, b.commandEmbed("Add", "Added to the ticket: "+strings.Join(added, ", "), b.cfg.Notifications.EmbedColors.Success, nil), false)
}

func (b *Bot) handleTicketRemove(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	channel := b.channelForID(interaction.ChannelID)
	if !ticket.IsTicket(channel) {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "This channel is not a ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	cfg := b.guildConfig(interaction.GuildID)
	ownerID := ticket.OwnerID(channel.Topic)
	if !auth.TicketManager(ownerID, interaction.Member, cfg, b.channelPermissions(channel.ID, user.ID)) {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "You cannot manage this ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	opt, ok := options["user"]
	if !ok {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "Pick a member to remove.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	target := opt.UserValue(session)
	if target == nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "Pick a member to remove.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if !hasMemberOverwrite(channel, target.ID) {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "That member is not in the ticket.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	switch ticket.CheckRemoval(target.ID, ownerID, b.botUserID()) {
	case ticket.RemoveDeniedOwner:
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "The ticket owner cannot be removed.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	case ticket.RemoveDeniedBot:
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "The bot cannot be removed from its own ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if err := session.ChannelPermissionDelete(channel.ID, target.ID); err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Remove", "Could not remove the member.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, user.ID, target.ID, "ticket_remove", "")
	b.respondEmbed(session, interaction, b.commandEmbed("Remove", "Removed <@"+target.ID+"> from the ticket.", b.cfg.Notifications.EmbedColors.Success, nil), false)
}

func (b *Bot) handleTicketPing(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	_ = ctx
	channel := b.channelForID(interaction.ChannelID)
	if !ticket.IsTicket(channel) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ping", "This channel is not a ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	user := b.interactionUser(interaction)
	if user == nil {
		return
	}
	cfg := b.guildConfig(interaction.GuildID)
	ownerID := ticket.OwnerID(channel.Topic)
	if !auth.TicketManager(ownerID, interaction.Member, cfg, b.channelPermissions(channel.ID, user.ID)) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ping", "You cannot manage this ticket.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	// With no target list the owner is pinged.
	var mentions []string
	if opt, ok := options["users"]; ok && opt.StringValue() != "" {
		targets := ticket.ResolveTargets(opt.StringValue(), b.guildMembers(interaction.GuildID))
		for _, target := range targets {
			mentions = append(mentions, "<@"+target.User.ID+">")
		}
		if len(mentions) == 0 {
			b.respondEmbed(session, interaction, b.commandEmbed("Ping", "No matching members found.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
			return
		}
	} else {
		if ownerID == "" {
			b.respondEmbed(session, interaction, b.commandEmbed("Ping", "This ticket has no recorded owner.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		mentions = []string{"<@" + ownerID + ">"}
	}

	msg, err := session.ChannelMessageSend(channel.ID, strings.Join(mentions, " ")+" your attention is needed in this ticket.")
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Ping", "Could not send the ping.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	delay := time.Duration(b.cfg.Ticket.PingDeleteSeconds) * time.Second
	channelID := channel.ID
	messageID := msg.ID
	b.sched.Schedule("ticket-ping:"+messageID, delay, func() {
		_ = b.session.ChannelMessageDelete(channelID, messageID)
	})
	b.respondEmbed(session, interaction, b.commandEmbed("Ping", fmt.Sprintf("Pinged %d member(s).", len(mentions)), b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleTicketSetup(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket setup", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	var categoryID, transcriptsID string
	if opt, ok := options["category"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			categoryID = channel.ID
		}
	}
	if opt, ok := options["transcripts"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			transcriptsID = channel.ID
		}
	}
	if categoryID == "" {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket setup", "Pick a category for tickets.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
		cfg.TicketCategoryID = categoryID
		if transcriptsID != "" {
			cfg.TranscriptChannelID = transcriptsID
		}
	})
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket setup", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Category", Value: "<#" + categoryID + ">", Inline: true},
	}
	if transcriptsID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Transcripts", Value: "<#" + transcriptsID + ">", Inline: true})
	}
	b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "ticket_setup", "category="+categoryID)
	b.respondEmbed(session, interaction, b.commandEmbed("Ticket setup", "Ticket system configured.", b.cfg.Notifications.EmbedColors.Success, fields), true)
}

func (b *Bot) handleTicketStaff(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
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
		if len(cfg.StaffRoleIDs) > 0 {
			mentions := make([]string, 0, len(cfg.StaffRoleIDs))
			for _, id := range cfg.StaffRoleIDs {
				mentions = append(mentions, "<@&"+id+">")
			}
			value = strings.Join(mentions, "\n")
		}
		fields := []*discordgo.MessageEmbedField{{Name: "Staff roles", Value: value, Inline: false}}
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Current staff roles.", b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "add", "remove":
		if roleID == "" {
			b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Pick a role.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			filtered := cfg.StaffRoleIDs[:0]
			for _, id := range cfg.StaffRoleIDs {
				if id != roleID {
					filtered = append(filtered, id)
				}
			}
			cfg.StaffRoleIDs = filtered
			if action == "add" {
				cfg.StaffRoleIDs = append(cfg.StaffRoleIDs, roleID)
			}
		})
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "ticket_staff_"+action, "role="+roleID)
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Staff roles updated.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket staff", "Unknown action.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

func (b *Bot) handleTicketPanel(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	_ = ctx
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket panel", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	panel := b.commandEmbed("Need help?", "Press the button below to open a private support ticket with the team.",
		b.cfg.Notifications.EmbedColors.Primary, nil)
	_, err := session.ChannelMessageSendComplex(interaction.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{panel},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Open a ticket",
					Style:    discordgo.PrimaryButton,
					CustomID: ticket.CreateButtonID,
					Emoji:    &discordgo.ComponentEmoji{Name: "🎫"},
				},
			}},
		},
	})
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket panel", "Could not post the panel here.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Ticket panel", "Panel posted.", b.cfg.Notifications.EmbedColors.Success, nil), true)
}

func (b *Bot) handleTicketInfo(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	_ = ctx
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Ticket info", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	cfg := b.guildConfig(interaction.GuildID)
	category := "Not set"
	if cfg.TicketCategoryID != "" {
		category = "<#" + cfg.TicketCategoryID + ">"
	}
	transcripts := "Not set"
	if cfg.TranscriptChannelID != "" {
		transcripts = "<#" + cfg.TranscriptChannelID + ">"
	}
	staff := "None"
	if len(cfg.StaffRoleIDs) > 0 {
		mentions := make([]string, 0, len(cfg.StaffRoleIDs))
		for _, id := range cfg.StaffRoleIDs {
			mentions = append(mentions, "<@&"+id+">")
		}
		staff = strings.Join(mentions, " ")
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Category", Value: category, Inline: true},
		{Name: "Transcripts", Value: transcripts, Inline: true},
		{Name: "Staff roles", Value: staff, Inline: false},
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Ticket info", "Current ticket configuration.", b.cfg.Notifications.EmbedColors.Info, fields), true)
}

func (b *Bot) handleTicketTranscripts(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	action := ""
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
			b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Pick a channel.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.TranscriptChannelID = channelID
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "transcripts_set", "channel="+channelID)
		b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Transcripts will be archived in <#"+channelID+">.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	case "remove":
		if err := b.store.Update(interaction.GuildID, func(cfg *store.GuildConfig) {
			cfg.TranscriptChannelID = ""
		}); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Could not save the configuration.", b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Log(ctx, audit.LevelInfo, interaction.GuildID, b.interactionUserID(interaction), "", "transcripts_remove", "")
		b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Transcript archiving disabled.", b.cfg.Notifications.EmbedColors.Success, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed("Transcripts", "Unknown action.", b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

// resolvedStaffMentions keeps only configured staff roles that still exist
// on the guild. Stale IDs are silently skipped.
func (b *Bot) resolvedStaffMentions(guildID string, staffRoleIDs []string) []string {
	guild := b.guildForID(guildID)
	if guild == nil {
		return nil
	}
	existing := make(map[string]struct{}, len(guild.Roles))
	for _, role := range guild.Roles {
		if role != nil {
			existing[role.ID] = struct{}{}
		}
	}
	var mentions []string
	for _, id := range staffRoleIDs {
		if _, ok := existing[id]; ok {
			mentions = append(mentions, "<@&"+id+">")
		}
	}
	return mentions
}

// guildMembers returns the member list from state when populated, falling
// back to paged REST fetches.
func (b *Bot) guildMembers(guildID string) []*discordgo.Member {
	if guild, err := b.session.State.Guild(guildID); err == nil && guild != nil && len(guild.Members) > 0 {
		return guild.Members
	}
	var all []*discordgo.Member
	after := ""
	for {
		batch, err := b.session.GuildMembers(guildID, after, 1000)
		if err != nil || len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		after = batch[len(batch)-1].User.ID
		if len(batch) < 1000 {
			break
		}
	}
	return all
}
