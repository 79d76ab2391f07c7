package ticket

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestChannelName(t *testing.T) {
	user := &discordgo.User{Username: "Some User", Discriminator: "1234"}
	if got := ChannelName(user); got != "ticket-some-user-1234" {
		t.Fatalf("unexpected channel name %q", got)
	}
	modern := &discordgo.User{Username: "someuser"}
	if got := ChannelName(modern); got != "ticket-someuser-0" {
		t.Fatalf("unexpected modern channel name %q", got)
	}
}

func TestOwnerIDFromTopic(t *testing.T) {
	topic := Topic("Some User", "123456789")
	if got := OwnerID(topic); got != "123456789" {
		t.Fatalf("expected owner id, got %q", got)
	}
	if OwnerID("not a ticket topic") != "" {
		t.Fatalf("expected empty owner for foreign topic")
	}
}

func TestNormalizeName(t *testing.T) {
	got, ok := NormalizeName("My Billing Issue!")
	if !ok || got != "ticket-my-billing-issue" {
		t.Fatalf("unexpected normalization %q ok=%t", got, ok)
	}

	// user-supplied prefix is discarded, not doubled
	got, ok = NormalizeName("ticket-refund")
	if !ok || got != "ticket-refund" {
		t.Fatalf("prefix not discarded: %q", got)
	}

	if _, ok := NormalizeName("!!!"); ok {
		t.Fatalf("expected invalid name for symbol-only input")
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	first, ok := NormalizeName("Señor Ticket #2")
	if !ok {
		t.Fatalf("expected valid name")
	}
	second, ok := NormalizeName("Señor Ticket #2")
	if !ok || first != second {
		t.Fatalf("normalization not stable: %q vs %q", first, second)
	}
}

func TestOverwrites(t *testing.T) {
	overwrites := Overwrites("g1", "owner1", "bot1", []string{"staff1", "staff2"})
	if len(overwrites) != 5 {
		t.Fatalf("expected 5 overwrites, got %d", len(overwrites))
	}
	if overwrites[0].ID != "g1" || overwrites[0].Deny&discordgo.PermissionViewChannel == 0 {
		t.Fatalf("everyone overwrite must deny view")
	}
	if overwrites[1].Allow&discordgo.PermissionAttachFiles == 0 {
		t.Fatalf("owner must be allowed attachments")
	}
	if overwrites[2].Allow&discordgo.PermissionManageChannels == 0 {
		t.Fatalf("bot must be allowed channel management")
	}
	if overwrites[3].Type != discordgo.PermissionOverwriteTypeRole {
		t.Fatalf("staff overwrites must target roles")
	}
}

func TestFindByName(t *testing.T) {
	channels := []*discordgo.Channel{
		nil,
		{ID: "c1", Name: "general"},
		{ID: "c2", Name: "ticket-alice-0"},
	}
	if got := FindByName(channels, "ticket-alice-0"); got == nil || got.ID != "c2" {
		t.Fatalf("expected c2, got %v", got)
	}
	// exact match only, no prefix matching
	if FindByName(channels, "ticket-alice") != nil {
		t.Fatalf("prefix must not match")
	}
	if FindByName(nil, "ticket-alice-0") != nil {
		t.Fatalf("expected no match on empty list")
	}
}

func TestCheckRemoval(t *testing.T) {
	if CheckRemoval("owner1", "owner1", "bot1") != RemoveDeniedOwner {
		t.Fatalf("owner must never be removable")
	}
	if CheckRemoval("bot1", "owner1", "bot1") != RemoveDeniedBot {
		t.Fatalf("bot must never be removable")
	}
	if CheckRemoval("u1", "owner1", "bot1") != RemoveAllowed {
		t.Fatalf("regular member should be removable")
	}
}

func testMembers() []*discordgo.Member {
	return []*discordgo.Member{
		{User: &discordgo.User{ID: "1", Username: "alice"}, Nick: "Ally"},
		{User: &discordgo.User{ID: "2", Username: "bob"}},
		{User: &discordgo.User{ID: "3", Username: "bobby", GlobalName: "Robert"}},
	}
}

func TestResolveTargets(t *testing.T) {
	members := testMembers()

	got := ResolveTargets("<@1>, 2 bobby", members)
	if len(got) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(got))
	}
	if got[0].User.ID != "1" || got[1].User.ID != "2" || got[2].User.ID != "3" {
		t.Fatalf("unexpected resolution order: %v %v %v", got[0].User.ID, got[1].User.ID, got[2].User.ID)
	}
}

func TestResolveTargetsDisplayAndSubstring(t *testing.T) {
	members := testMembers()

	got := ResolveTargets("Ally", members)
	if len(got) != 1 || got[0].User.ID != "1" {
		t.Fatalf("display name lookup failed: %v", got)
	}

	// exact username wins over the substring that would match bobby too
	got = ResolveTargets("bob", members)
	if len(got) != 1 || got[0].User.ID != "2" {
		t.Fatalf("exact username should win: %v", got)
	}

	got = ResolveTargets("OBER", members)
	if len(got) != 1 || got[0].User.ID != "3" {
		t.Fatalf("case-insensitive substring failed: %v", got)
	}
}

func TestResolveTargetsDeduplicates(t *testing.T) {
	members := testMembers()
	got := ResolveTargets("alice <@1> Ally", members)
	if len(got) != 1 {
		t.Fatalf("expected duplicate suppression, got %d", len(got))
	}
}

func TestResolveTargetsNoMatch(t *testing.T) {
	if got := ResolveTargets("nobody-here", testMembers()); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
