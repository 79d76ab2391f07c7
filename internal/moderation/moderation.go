package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	MaxPurgeCount     = 100
	MaxTimeoutMinutes = 40320 // 28 days, the platform cap
	MaxDeleteDays     = 7
)

type Denial int

const (
	Allowed Denial = iota
	DeniedSelf
	DeniedOwner
	DeniedHierarchy
	DeniedBotHierarchy
)

func ValidPurgeCount(n int) bool {
	return n >= 1 && n <= MaxPurgeCount
}

func ValidTimeoutMinutes(m int) bool {
	return m >= 1 && m <= MaxTimeoutMinutes
}

func ClampDeleteDays(d int) int {
	if d < 0 {
		return 0
	}
	if d > MaxDeleteDays {
		return MaxDeleteDays
	}
	return d
}

func TimeoutUntil(now time.Time, minutes int) time.Time {
	return now.Add(time.Duration(minutes) * time.Minute)
}

func IsTimedOut(member *discordgo.Member, now time.Time) bool {
	return member != nil &&
		member.CommunicationDisabledUntil != nil &&
		member.CommunicationDisabledUntil.After(now)
}

// SelectPurgeTargets picks, from an oldest-last fetched window, the IDs of
// up to count messages to delete. With a target author the window is
// expected to be over-fetched; selection is an approximation bounded by
// that window, not a guarantee.
func SelectPurgeTargets(msgs []*discordgo.Message, count int, targetUserID string) []string {
	ids := make([]string, 0, count)
	for _, msg := range msgs {
		if msg == nil || msg.Author == nil {
			continue
		}
		if targetUserID != "" && msg.Author.ID != targetUserID {
			continue
		}
		ids = append(ids, msg.ID)
		if len(ids) == count {
			break
		}
	}
	return ids
}

// CheckTarget applies the shared ban/timeout guards: no self-targeting, the
// guild owner is untouchable, the actor must outrank the target unless the
// actor owns the guild, and the bot must outrank the target.
func CheckTarget(guild *discordgo.Guild, actor, target, bot *discordgo.Member) Denial {
	if guild == nil || actor == nil || actor.User == nil || target == nil || target.User == nil {
		return DeniedHierarchy
	}
	if target.User.ID == actor.User.ID {
		return DeniedSelf
	}
	if target.User.ID == guild.OwnerID {
		return DeniedOwner
	}
	targetPos := highestRolePosition(guild, target)
	if actor.User.ID != guild.OwnerID && targetPos >= highestRolePosition(guild, actor) {
		return DeniedHierarchy
	}
	if bot != nil && targetPos >= highestRolePosition(guild, bot) {
		return DeniedBotHierarchy
	}
	return Allowed
}

func highestRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	pos := 0
	roleMap := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, role := range guild.Roles {
		roleMap[role.ID] = role
	}
	for _, roleID := range member.Roles {
		if role := roleMap[roleID]; role != nil && role.Position > pos {
			pos = role.Position
		}
	}
	return pos
}
