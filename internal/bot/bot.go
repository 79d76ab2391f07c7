package bot

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/config"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/sched"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/status"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/tebex"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	audit    *audit.Logger
	sched    *sched.Scheduler
	status   *status.Client
	tebex    *tebex.Verifier
	session  *discordgo.Session
	stopPoll chan struct{}
}

func New(cfg config.Config, logger *zap.Logger, st *store.Store, auditLogger *audit.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	var confirmer tebex.Confirmer = tebex.StubConfirmer{}
	if cfg.Tebex.Secret != "" {
		confirmer = tebex.NewClient(cfg.Tebex.Endpoint, cfg.Tebex.Secret)
	}

	b := &Bot{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		audit:    auditLogger,
		sched:    sched.New(),
		status:   status.NewClient(cfg.Status.URL),
		tebex:    tebex.NewVerifier(confirmer),
		session:  session,
		stopPoll: make(chan struct{}),
	}

	if b.audit != nil {
		b.audit.SetNotifier(func(ctx context.Context, entry audit.Entry) {
			if entry.Level != audit.LevelCrit {
				return
			}
			b.notifyAdmin(ctx, entry)
		})
	}

	return b, nil
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildMemberAdd)
	b.session.AddHandler(b.onMessageReactionAdd)
	b.session.AddHandler(b.onMessageReactionRemove)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	if err := b.registerCommands(); err != nil {
		return err
	}

	b.startStatusPoller()

	return nil
}

func (b *Bot) Close(ctx context.Context) {
	close(b.stopPoll)
	b.sendShutdownNotices(ctx)
	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready", zap.String("user", session.State.User.Username))
}

func (b *Bot) botUserID() string {
	if b.session == nil || b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.ID
}

func (b *Bot) guildConfig(guildID string) store.GuildConfig {
	cfg, err := b.store.Guild(guildID)
	if err != nil {
		b.logger.Warn("guild config fallback", zap.String("guild_id", guildID), zap.Error(err))
		return store.GuildConfig{}
	}
	return cfg
}

func (b *Bot) guildForID(guildID string) *discordgo.Guild {
	guild, err := b.session.State.Guild(guildID)
	if err == nil && guild != nil {
		return guild
	}
	guild, _ = b.session.Guild(guildID)
	return guild
}

func (b *Bot) memberForUser(guildID, userID string) *discordgo.Member {
	member, err := b.session.State.Member(guildID, userID)
	if err == nil && member != nil {
		return member
	}
	member, _ = b.session.GuildMember(guildID, userID)
	return member
}

// channelPermissions computes the member's effective permissions inside the
// channel, including overwrites. It falls back to zero when the state has
// not caught up yet.
func (b *Bot) channelPermissions(channelID, userID string) int64 {
	perms, err := b.session.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		return 0
	}
	return perms
}

func (b *Bot) respond(session *discordgo.Session, interaction *discordgo.InteractionCreate, content string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}

func (b *Bot) respondEmbed(session *discordgo.Session, interaction *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	if embed == nil {
		b.respond(session, interaction, "No response available.", ephemeral)
		return
	}
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
}

func (b *Bot) commandEmbed(title, description string, color int, fields []*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields:      fields,
	}
}

func (b *Bot) dmUser(userID string, embed *discordgo.MessageEmbed) error {
	channel, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = b.session.ChannelMessageSendEmbed(channel.ID, embed)
	return err
}

func (b *Bot) notifyAdmin(ctx context.Context, entry audit.Entry) {
	_ = ctx
	adminID := b.cfg.Notifications.AdminUserID
	if adminID == "" {
		return
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Event", Value: entry.Event, Inline: true},
		{Name: "Guild", Value: entry.GuildID, Inline: true},
	}
	if entry.TargetID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Target", Value: "<@" + entry.TargetID + ">", Inline: true})
	}
	if entry.Details != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Details", Value: entry.Details, Inline: false})
	}
	embed := b.commandEmbed("Critical event", "A critical moderation event was recorded.", b.cfg.Notifications.EmbedColors.Error, fields)
	if err := b.dmUser(adminID, embed); err != nil {
		b.logger.Warn("admin notify failed", zap.Error(err))
	}
}

func (b *Bot) sendShutdownNotices(ctx context.Context) {
	_ = ctx
	notify := b.cfg.Notifications
	if notify.AdminUserID != "" {
		embed := b.commandEmbed("Shutting down", "The bot is going offline.", b.cfg.Notifications.EmbedColors.Warning, nil)
		if err := b.dmUser(notify.AdminUserID, embed); err != nil {
			b.logger.Warn("shutdown DM failed", zap.Error(err))
		}
	}
	if notify.EmailEnabled && notify.SMTPAddr != "" && notify.EmailFrom != "" && notify.EmailTo != "" {
		body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Bot shutting down\r\n\r\nThe bot went offline at %s.\r\n",
			notify.EmailFrom, notify.EmailTo, time.Now().UTC().Format(time.RFC3339))
		if err := smtp.SendMail(notify.SMTPAddr, nil, notify.EmailFrom, []string{notify.EmailTo}, []byte(body)); err != nil {
			b.logger.Warn("shutdown email failed", zap.Error(err))
		}
	}
}
