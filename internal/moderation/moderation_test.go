package moderation

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestPurgeCountBounds(t *testing.T) {
	for _, n := range []int{1, 50, 100} {
		if !ValidPurgeCount(n) {
			t.Fatalf("count %d should be valid", n)
		}
	}
	for _, n := range []int{0, -1, 101} {
		if ValidPurgeCount(n) {
			t.Fatalf("count %d should be invalid", n)
		}
	}
}

func TestTimeoutBounds(t *testing.T) {
	if !ValidTimeoutMinutes(1) || !ValidTimeoutMinutes(40320) {
		t.Fatalf("boundary minutes should be valid")
	}
	if ValidTimeoutMinutes(0) || ValidTimeoutMinutes(40321) {
		t.Fatalf("out-of-range minutes should be invalid")
	}
	until := TimeoutUntil(time.Unix(0, 0), 10)
	if until != time.Unix(600, 0) {
		t.Fatalf("unexpected expiry %v", until)
	}
}

func TestClampDeleteDays(t *testing.T) {
	if ClampDeleteDays(-3) != 0 || ClampDeleteDays(9) != 7 || ClampDeleteDays(3) != 3 {
		t.Fatalf("clamp broken")
	}
}

func TestSelectPurgeTargetsFiltered(t *testing.T) {
	// 10 messages, 3 authored by x, interleaved
	var msgs []*discordgo.Message
	for i := 0; i < 10; i++ {
		author := "other"
		if i == 1 || i == 4 || i == 8 {
			author = "x"
		}
		msgs = append(msgs, &discordgo.Message{
			ID:     fmt.Sprintf("m%d", i),
			Author: &discordgo.User{ID: author},
		})
	}

	ids := SelectPurgeTargets(msgs, 3, "x")
	if len(ids) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(ids))
	}
	want := map[string]bool{"m1": true, "m4": true, "m8": true}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("selected message %s not authored by x", id)
		}
	}
}

func TestSelectPurgeTargetsUnfiltered(t *testing.T) {
	msgs := []*discordgo.Message{
		{ID: "a", Author: &discordgo.User{ID: "1"}},
		{ID: "b", Author: &discordgo.User{ID: "2"}},
		{ID: "c", Author: &discordgo.User{ID: "3"}},
	}
	ids := SelectPurgeTargets(msgs, 2, "")
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected selection %v", ids)
	}
}

func guardGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "low", Position: 1},
			{ID: "mid", Position: 5},
			{ID: "high", Position: 9},
		},
	}
}

func guardMember(id string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id}, Roles: roles}
}

func TestCheckTarget(t *testing.T) {
	guild := guardGuild()
	bot := guardMember("bot", "high")

	if CheckTarget(guild, guardMember("a", "mid"), guardMember("a", "mid"), bot) != DeniedSelf {
		t.Fatalf("self target must be denied")
	}
	if CheckTarget(guild, guardMember("a", "high"), guardMember("owner"), bot) != DeniedOwner {
		t.Fatalf("guild owner must be untouchable")
	}

	// equal highest role position, actor not owner
	if CheckTarget(guild, guardMember("a", "mid"), guardMember("b", "mid"), bot) != DeniedHierarchy {
		t.Fatalf("equal rank must be a hierarchy violation")
	}

	// guild owner bypasses the actor hierarchy check
	ownerActor := guardMember("owner", "low")
	if CheckTarget(guild, ownerActor, guardMember("b", "mid"), bot) != Allowed {
		t.Fatalf("guild owner should bypass hierarchy")
	}

	// but nobody bypasses the bot hierarchy check
	weakBot := guardMember("bot", "low")
	if CheckTarget(guild, ownerActor, guardMember("b", "mid"), weakBot) != DeniedBotHierarchy {
		t.Fatalf("target above bot must be denied")
	}

	if CheckTarget(guild, guardMember("a", "high"), guardMember("b", "low"), bot) != Allowed {
		t.Fatalf("higher ranked actor should be allowed")
	}
}

func TestIsTimedOut(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	if !IsTimedOut(&discordgo.Member{CommunicationDisabledUntil: &future}, now) {
		t.Fatalf("future expiry means timed out")
	}
	if IsTimedOut(&discordgo.Member{CommunicationDisabledUntil: &past}, now) {
		t.Fatalf("past expiry means not timed out")
	}
	if IsTimedOut(&discordgo.Member{}, now) {
		t.Fatalf("nil expiry means not timed out")
	}
}
