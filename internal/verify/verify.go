package verify

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
)

// Qualifies decides whether a reaction event is a verification toggle: the
// reactor is not the bot, the target message was posted by the bot and
// carries an embed whose title mentions verification, and the emoji matches
// the configured one.
func Qualifies(botID string, reaction *discordgo.MessageReaction, message *discordgo.Message, cfg store.GuildConfig) bool {
	if reaction == nil || message == nil {
		return false
	}
	if reaction.UserID == botID {
		return false
	}
	if message.Author == nil || message.Author.ID != botID {
		return false
	}
	if len(message.Embeds) == 0 {
		return false
	}
	title := message.Embeds[0].Title
	if !strings.Contains(strings.ToLower(title), "verification") {
		return false
	}
	return reaction.Emoji.Name == cfg.Emoji()
}

// HasRole reports whether the member already holds the role, so grants and
// revocations stay no-ops when nothing would change.
func HasRole(member *discordgo.Member, roleID string) bool {
	if member == nil {
		return false
	}
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
