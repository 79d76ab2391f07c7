package bot

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/auth"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) handlePing(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	latency := session.HeartbeatLatency()
	quality := "Excellent"
	switch {
	case latency > 500*time.Millisecond:
		quality = "Poor"
	case latency > 200*time.Millisecond:
		quality = "Fair"
	case latency > 100*time.Millisecond:
		quality = "Good"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Gateway latency", Value: fmt.Sprintf("%d ms", latency.Milliseconds()), Inline: true},
		{Name: "Quality", Value: quality, Inline: true},
	}
	b.respondEmbed(session, interaction, b.commandEmbed("Pong!", "The bot is up.", b.cfg.Notifications.EmbedColors.Info, fields), true)
}

func (b *Bot) handleServerInfo(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	guild := b.guildForID(interaction.GuildID)
	if guild == nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Server info", "Server data is not available yet.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		created = ts.UTC().Format("2006-01-02")
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Name", Value: guild.Name, Inline: true},
		{Name: "Owner", Value: "<@" + guild.OwnerID + ">", Inline: true},
		{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
		{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
		{Name: "Boosts", Value: fmt.Sprintf("%d", guild.PremiumSubscriptionCount), Inline: true},
		{Name: "Created", Value: created, Inline: true},
		{Name: "ID", Value: guild.ID, Inline: true},
	}
	embed := b.commandEmbed("Server info", "", b.cfg.Notifications.EmbedColors.Info, fields)
	if icon := guild.IconURL("128"); icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: icon}
	}
	b.respondEmbed(session, interaction, embed, false)
}

func (b *Bot) handleServerLogo(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	guild := b.guildForID(interaction.GuildID)
	if guild == nil || guild.Icon == "" {
		b.respondEmbed(session, interaction, b.commandEmbed("Server logo", "This server has no icon.", b.cfg.Notifications.EmbedColors.Warning, nil), true)
		return
	}

	url := guild.IconURL("512")
	embed := b.commandEmbed("Server logo", "", b.cfg.Notifications.EmbedColors.Info, nil)
	embed.Image = &discordgo.MessageEmbedImage{URL: url}

	if config, format, err := b.fetchImageConfig(url); err == nil {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Format", Value: format, Inline: true},
			{Name: "Dimensions", Value: fmt.Sprintf("%dx%d", config.Width, config.Height), Inline: true},
		}
	} else {
		b.logger.Warn("icon inspect failed", zap.String("guild_id", guild.ID), zap.Error(err))
	}

	b.respondEmbed(session, interaction, embed, false)
}

// fetchImageConfig downloads only the icon header and decodes its
// dimensions. Guild icons come back as PNG, JPEG, or WebP depending on the
// upload, all of which are registered decoders here.
func (b *Bot) fetchImageConfig(url string) (image.Config, string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return image.Config{}, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return image.Config{}, "", fmt.Errorf("icon fetch returned %d", resp.StatusCode)
	}
	return image.DecodeConfig(resp.Body)
}

func (b *Bot) handleAddRoleAll(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if !auth.Administrator(b.guildForID(interaction.GuildID), interaction.Member) {
		b.respondEmbed(session, interaction, b.commandEmbed("Role assignment", "Administrator only.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	opt, ok := options["role"]
	if !ok {
		b.respondEmbed(session, interaction, b.commandEmbed("Role assignment", "Pick a role.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	role := opt.RoleValue(session, interaction.GuildID)
	if role == nil {
		b.respondEmbed(session, interaction, b.commandEmbed("Role assignment", "Pick a role.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	members := b.guildMembers(interaction.GuildID)
	if len(members) == 0 {
		b.respondEmbed(session, interaction, b.commandEmbed("Role assignment", "The member list is not available yet.", b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	b.respondEmbed(session, interaction, b.commandEmbed("Role assignment",
		fmt.Sprintf("Granting <@&%s> to %d members in the background. This is throttled and may take a while.", role.ID, len(members)),
		b.cfg.Notifications.EmbedColors.Info, nil), true)

	guildID := interaction.GuildID
	actorID := b.interactionUserID(interaction)
	batch := b.cfg.RoleAssign.BatchSize
	pause := time.Duration(b.cfg.RoleAssign.PauseSeconds) * time.Second
	go func() {
		granted := 0
		processed := 0
		for _, member := range members {
			if member == nil || member.User == nil || member.User.Bot {
				continue
			}
			already := false
			for _, id := range member.Roles {
				if id == role.ID {
					already = true
					break
				}
			}
			if already {
				continue
			}
			if err := b.session.GuildMemberRoleAdd(guildID, member.User.ID, role.ID); err != nil {
				b.logger.Warn("role grant failed", zap.String("user_id", member.User.ID), zap.Error(err))
			} else {
				granted++
			}
			processed++
			if batch > 0 && processed%batch == 0 {
				time.Sleep(pause)
			}
		}
		b.audit.Log(context.Background(), audit.LevelInfo, guildID, actorID, "", "role_assign_all",
			fmt.Sprintf("role=%s granted=%d", role.ID, granted))
	}()
	_ = ctx
}
