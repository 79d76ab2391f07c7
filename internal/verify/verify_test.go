package verify

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
)

const botID = "bot1"

func verificationMessage() *discordgo.Message {
	return &discordgo.Message{
		Author: &discordgo.User{ID: botID},
		Embeds: []*discordgo.MessageEmbed{{Title: "🔐 Server Verification"}},
	}
}

func reaction(userID, emoji string) *discordgo.MessageReaction {
	return &discordgo.MessageReaction{
		UserID: userID,
		Emoji:  discordgo.Emoji{Name: emoji},
	}
}

func TestQualifies(t *testing.T) {
	var cfg store.GuildConfig
	if !Qualifies(botID, reaction("u1", "✅"), verificationMessage(), cfg) {
		t.Fatalf("expected qualifying reaction")
	}
}

func TestEmojiMismatchIgnored(t *testing.T) {
	var cfg store.GuildConfig
	if Qualifies(botID, reaction("u1", "👍"), verificationMessage(), cfg) {
		t.Fatalf("mismatched emoji must not qualify")
	}
	cfg.VerificationEmoji = "👍"
	if !Qualifies(botID, reaction("u1", "👍"), verificationMessage(), cfg) {
		t.Fatalf("configured emoji should qualify")
	}
}

func TestBotReactionIgnored(t *testing.T) {
	var cfg store.GuildConfig
	if Qualifies(botID, reaction(botID, "✅"), verificationMessage(), cfg) {
		t.Fatalf("bot's own reaction must not qualify")
	}
}

func TestForeignMessageIgnored(t *testing.T) {
	var cfg store.GuildConfig

	other := verificationMessage()
	other.Author = &discordgo.User{ID: "someone-else"}
	if Qualifies(botID, reaction("u1", "✅"), other, cfg) {
		t.Fatalf("message from another author must not qualify")
	}

	bare := &discordgo.Message{Author: &discordgo.User{ID: botID}}
	if Qualifies(botID, reaction("u1", "✅"), bare, cfg) {
		t.Fatalf("message without embeds must not qualify")
	}

	wrongTitle := verificationMessage()
	wrongTitle.Embeds[0].Title = "Welcome"
	if Qualifies(botID, reaction("u1", "✅"), wrongTitle, cfg) {
		t.Fatalf("embed without verification title must not qualify")
	}
}

func TestHasRole(t *testing.T) {
	member := &discordgo.Member{Roles: []string{"r1", "r2"}}
	if !HasRole(member, "r2") {
		t.Fatalf("expected role held")
	}
	if HasRole(member, "r3") {
		t.Fatalf("expected role not held")
	}
}
