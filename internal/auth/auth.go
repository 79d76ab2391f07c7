package auth

import (
	"github.com/bwmarrin/discordgo"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"
)

const moderationBits = discordgo.PermissionBanMembers |
	discordgo.PermissionManageMessages |
	discordgo.PermissionModerateMembers

// RolePermissions unions the guild-level permission bits of the member's
// roles plus the @everyone role. Role IDs the guild no longer knows simply
// contribute nothing.
func RolePermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if guild == nil || member == nil {
		return 0
	}
	perms := int64(0)
	roleMap := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, role := range guild.Roles {
		roleMap[role.ID] = role
		if role.ID == guild.ID {
			perms |= role.Permissions
		}
	}
	for _, roleID := range member.Roles {
		if role := roleMap[roleID]; role != nil {
			perms |= role.Permissions
		}
	}
	return perms
}

func Administrator(guild *discordgo.Guild, member *discordgo.Member) bool {
	if guild == nil || member == nil || member.User == nil {
		return false
	}
	if guild.OwnerID == member.User.ID {
		return true
	}
	return RolePermissions(guild, member)&discordgo.PermissionAdministrator != 0
}

// Moderator reports whether the member may run moderation commands: an
// administrator, a holder of any native moderation bit, or a holder of a
// configured moderation role.
func Moderator(guild *discordgo.Guild, member *discordgo.Member, cfg store.GuildConfig) bool {
	if member == nil {
		return false
	}
	if Administrator(guild, member) {
		return true
	}
	if RolePermissions(guild, member)&moderationBits != 0 {
		return true
	}
	return cfg.HasModerationRole(member.Roles)
}

// TicketManager reports whether the member may manage a given ticket: the
// ticket's owner, a staff-role holder, or anyone whose channel-scoped
// permissions include manage-channels. channelPerms is the caller-computed
// permission set for the channel in question.
func TicketManager(ownerID string, member *discordgo.Member, cfg store.GuildConfig, channelPerms int64) bool {
	if member == nil || member.User == nil {
		return false
	}
	if ownerID != "" && member.User.ID == ownerID {
		return true
	}
	if cfg.HasStaffRole(member.Roles) {
		return true
	}
	return channelPerms&discordgo.PermissionManageChannels != 0
}

// Staff is the stricter gate used by rename: configured staff roles only,
// with no owner or manage-channels escape hatch.
func Staff(member *discordgo.Member, cfg store.GuildConfig) bool {
	if member == nil {
		return false
	}
	return cfg.HasStaffRole(member.Roles)
}
