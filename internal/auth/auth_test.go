package auth

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Permissions: 0},
			{ID: "admin", Permissions: discordgo.PermissionAdministrator},
			{ID: "banner", Permissions: discordgo.PermissionBanMembers},
			{ID: "plain", Permissions: discordgo.PermissionSendMessages},
		},
	}
}

func member(userID string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roles}
}

func TestAdministrator(t *testing.T) {
	guild := testGuild()
	if !Administrator(guild, member("owner")) {
		t.Fatalf("guild owner should be administrator")
	}
	if !Administrator(guild, member("u1", "admin")) {
		t.Fatalf("admin role should be administrator")
	}
	if Administrator(guild, member("u2", "plain")) {
		t.Fatalf("plain role should not be administrator")
	}
}

func TestModeratorPaths(t *testing.T) {
	guild := testGuild()
	var cfg store.GuildConfig

	if !Moderator(guild, member("u1", "admin"), cfg) {
		t.Fatalf("admin should moderate")
	}
	if !Moderator(guild, member("u2", "banner"), cfg) {
		t.Fatalf("ban bit should moderate")
	}
	if Moderator(guild, member("u3", "plain"), cfg) {
		t.Fatalf("plain member should not moderate")
	}

	cfg.ModerationRoleIDs = []string{"plain"}
	if !Moderator(guild, member("u3", "plain"), cfg) {
		t.Fatalf("configured moderation role should moderate")
	}
}

func TestModeratorToleratesStaleRoles(t *testing.T) {
	guild := testGuild()
	cfg := store.GuildConfig{ModerationRoleIDs: []string{"deleted-role"}}
	if Moderator(guild, member("u1", "plain"), cfg) {
		t.Fatalf("stale configured role must count as not held")
	}
}

func TestTicketManager(t *testing.T) {
	cfg := store.GuildConfig{StaffRoleIDs: []string{"staff"}}

	if !TicketManager("owner1", member("owner1"), cfg, 0) {
		t.Fatalf("owner should manage own ticket")
	}
	if !TicketManager("owner1", member("u2", "staff"), cfg, 0) {
		t.Fatalf("staff role should manage tickets")
	}
	if !TicketManager("owner1", member("u3"), cfg, discordgo.PermissionManageChannels) {
		t.Fatalf("manage-channels should manage tickets")
	}
	if TicketManager("owner1", member("u4"), cfg, discordgo.PermissionSendMessages) {
		t.Fatalf("unrelated member should not manage tickets")
	}
}

// Granting a configured staff role flips authorization without any state
// beyond the member's role list.
func TestTicketManagerMonotonic(t *testing.T) {
	cfg := store.GuildConfig{StaffRoleIDs: []string{"staff"}}
	m := member("u1")
	if TicketManager("owner1", m, cfg, 0) {
		t.Fatalf("should start unauthorized")
	}
	m.Roles = append(m.Roles, "staff")
	if !TicketManager("owner1", m, cfg, 0) {
		t.Fatalf("should be authorized after role grant")
	}
}

func TestStaffGateExcludesOwner(t *testing.T) {
	cfg := store.GuildConfig{StaffRoleIDs: []string{"staff"}}
	if Staff(member("owner1"), cfg) {
		t.Fatalf("owner without staff role must not pass staff gate")
	}
	if !Staff(member("u1", "staff"), cfg) {
		t.Fatalf("staff role should pass staff gate")
	}
}
