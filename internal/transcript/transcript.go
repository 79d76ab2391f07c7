package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const timeLayout = "2006-01-02 15:04:05"

type Meta struct {
	ChannelName  string
	OwnerDisplay string
	OwnerName    string
	OwnerID      string
	CreatedAt    time.Time
	ClosedAt     time.Time
}

// Build linearizes a ticket's message history, oldest first, into a flat
// text document. It reads nothing itself and caches nothing; calling it
// again with a longer history just yields a longer transcript.
func Build(meta Meta, msgs []*discordgo.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcript of #%s\n", meta.ChannelName)
	fmt.Fprintf(&b, "Owner: %s (%s, %s)\n", meta.OwnerDisplay, meta.OwnerName, meta.OwnerID)
	fmt.Fprintf(&b, "Created: %s\n", meta.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "Closed: %s\n", meta.ClosedAt.UTC().Format(timeLayout))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")

	for _, msg := range msgs {
		if msg == nil || msg.Author == nil {
			continue
		}
		fmt.Fprintf(&b, "[%s] %s (%s): %s\n",
			msg.Timestamp.UTC().Format(timeLayout),
			authorDisplay(msg.Author),
			msg.Author.Username,
			msg.Content)
		for _, embed := range msg.Embeds {
			if embed.Title != "" {
				fmt.Fprintf(&b, "    [embed] %s\n", embed.Title)
			}
			if embed.Description != "" {
				fmt.Fprintf(&b, "    [embed] %s\n", embed.Description)
			}
		}
		for _, attachment := range msg.Attachments {
			fmt.Fprintf(&b, "    [attachment] %s\n", attachment.Filename)
		}
	}

	return b.String()
}

func authorDisplay(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// FileName names the uploaded transcript after the channel.
func FileName(channelName string) string {
	return fmt.Sprintf("transcript-%s.txt", channelName)
}

// UnavailableNotice is posted to the archive channel in place of a
// transcript whose channel history could not be retrieved.
func UnavailableNotice(channelName string) string {
	return fmt.Sprintf("Ticket #%s was closed but its transcript could not be retrieved.", channelName)
}
