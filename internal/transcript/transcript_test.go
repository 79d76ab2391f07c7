package transcript

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func testMeta() Meta {
	return Meta{
		ChannelName:  "ticket-alice-0",
		OwnerDisplay: "Alice",
		OwnerName:    "alice",
		OwnerID:      "1",
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ClosedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func msg(author, content string, at time.Time) *discordgo.Message {
	return &discordgo.Message{
		Author:    &discordgo.User{Username: author},
		Content:   content,
		Timestamp: at,
	}
}

func TestBuildCompleteness(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	msgs := []*discordgo.Message{
		msg("alice", "hello, my order is broken", base),
		msg("staffer", "looking into it", base.Add(time.Minute)),
		msg("alice", "thanks!", base.Add(2*time.Minute)),
	}

	out := Build(testMeta(), msgs)

	var lastIdx int
	for _, m := range msgs {
		idx := strings.Index(out, m.Content)
		if idx < 0 {
			t.Fatalf("content %q missing from transcript", m.Content)
		}
		if idx < lastIdx {
			t.Fatalf("content %q out of order", m.Content)
		}
		lastIdx = idx
	}

	if strings.Count(out, "] alice (alice):")+strings.Count(out, "] staffer (staffer):") != 3 {
		t.Fatalf("expected 3 message lines:\n%s", out)
	}
}

func TestBuildHeader(t *testing.T) {
	out := Build(testMeta(), nil)
	for _, want := range []string{
		"Transcript of #ticket-alice-0",
		"Owner: Alice (alice, 1)",
		"Created: 2024-03-01 10:00:00",
		"Closed: 2024-03-01 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("header missing %q:\n%s", want, out)
		}
	}
}

func TestBuildEmbedsAndAttachments(t *testing.T) {
	m := msg("staffer", "see details", time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC))
	m.Embeds = []*discordgo.MessageEmbed{{Title: "Order 42", Description: "refund issued"}}
	m.Attachments = []*discordgo.MessageAttachment{{Filename: "invoice.pdf"}}

	out := Build(testMeta(), []*discordgo.Message{m})
	for _, want := range []string{"[embed] Order 42", "[embed] refund issued", "[attachment] invoice.pdf"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
}

func TestBuildRestartable(t *testing.T) {
	msgs := []*discordgo.Message{msg("alice", "hi", time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC))}
	if Build(testMeta(), msgs) != Build(testMeta(), msgs) {
		t.Fatalf("same input must yield same transcript")
	}
}

func TestUnavailableNotice(t *testing.T) {
	got := UnavailableNotice("ticket-alice-0")
	if !strings.Contains(got, "#ticket-alice-0") {
		t.Fatalf("notice must name the ticket: %q", got)
	}
	if !strings.Contains(got, "could not be retrieved") {
		t.Fatalf("notice must state the transcript is missing: %q", got)
	}
}
