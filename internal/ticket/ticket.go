package ticket

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const Prefix = "ticket-"

// Component custom IDs. These are stable across restarts so panels and
// close buttons posted by earlier runs keep working.
const (
	CreateButtonID = "ticket_create"
	CloseButtonID  = "ticket_close"
)

var (
	topicOwnerRe = regexp.MustCompile(`\((\d+)\)\s*$`)
	nameCharRe   = regexp.MustCompile(`[^a-z0-9-_]`)
	idRe         = regexp.MustCompile(`^\d+$`)
	mentionRe    = regexp.MustCompile(`^<@!?(\d+)>$`)
)

// ChannelName builds the conventional name for a user's ticket channel.
// The convention is what enforces one open ticket per user per guild.
func ChannelName(user *discordgo.User) string {
	if user == nil {
		return ""
	}
	name := strings.ToLower(user.Username)
	discriminator := user.Discriminator
	if discriminator == "" {
		discriminator = "0"
	}
	return fmt.Sprintf("%s%s-%s", Prefix, nameCharRe.ReplaceAllString(strings.ReplaceAll(name, " ", "-"), ""), discriminator)
}

func Topic(displayName, userID string) string {
	return fmt.Sprintf("Support ticket for %s (%s)", displayName, userID)
}

// OwnerID extracts the owner's user ID from a ticket channel topic. The
// topic-embedded ID is the canonical ownership record; usernames may change
// after creation, the ID never does.
func OwnerID(topic string) string {
	m := topicOwnerRe.FindStringSubmatch(topic)
	if m == nil {
		return ""
	}
	return m[1]
}

func IsTicket(channel *discordgo.Channel) bool {
	return channel != nil && strings.HasPrefix(channel.Name, Prefix)
}

// FindByName returns the channel whose name matches exactly, the basis of
// the one-open-ticket-per-user guard.
func FindByName(channels []*discordgo.Channel, name string) *discordgo.Channel {
	for _, channel := range channels {
		if channel != nil && channel.Name == name {
			return channel
		}
	}
	return nil
}

// NormalizeName lowercases, maps spaces to hyphens, strips everything
// outside [a-z0-9-_] and any user-supplied ticket- prefix, then re-prefixes.
// ok is false when nothing survives the filter.
func NormalizeName(raw string) (name string, ok bool) {
	n := strings.ToLower(strings.TrimSpace(raw))
	n = strings.ReplaceAll(n, " ", "-")
	n = nameCharRe.ReplaceAllString(n, "")
	n = strings.TrimPrefix(n, Prefix)
	if n == "" {
		return "", false
	}
	return Prefix + n, true
}

const (
	memberAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionEmbedLinks
	botAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionManageChannels |
		discordgo.PermissionManageMessages
	staffAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionManageMessages
)

func MemberAllow() int64 { return memberAllow }

// Overwrites builds the permission overwrite set for a new ticket channel:
// @everyone hidden, owner and bot granted, each configured staff role
// granted.
func Overwrites(guildID, ownerID, botID string, staffRoleIDs []string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    ownerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberAllow,
		},
		{
			ID:    botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: botAllow,
		},
	}
	for _, roleID := range staffRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: staffAllow,
		})
	}
	return overwrites
}

type RemoveDenial int

const (
	RemoveAllowed RemoveDenial = iota
	RemoveDeniedOwner
	RemoveDeniedBot
)

// CheckRemoval guards removeMember: the derived owner and the bot itself can
// never be removed from a ticket, whoever asks.
func CheckRemoval(targetID, ownerID, botID string) RemoveDenial {
	switch targetID {
	case ownerID:
		return RemoveDeniedOwner
	case botID:
		return RemoveDeniedBot
	default:
		return RemoveAllowed
	}
}

func displayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// ResolveTargets maps a whitespace/comma separated token list onto guild
// members. Per token it accepts mention syntax, a raw ID, an exact
// username, an exact display name, then a case-insensitive substring match
// against either; first match wins and duplicates are suppressed.
func ResolveTargets(raw string, members []*discordgo.Member) []*discordgo.Member {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]struct{})
	var resolved []*discordgo.Member
	for _, token := range tokens {
		member := resolveToken(token, members)
		if member == nil || member.User == nil {
			continue
		}
		if _, dup := seen[member.User.ID]; dup {
			continue
		}
		seen[member.User.ID] = struct{}{}
		resolved = append(resolved, member)
	}
	return resolved
}

func resolveToken(token string, members []*discordgo.Member) *discordgo.Member {
	if m := mentionRe.FindStringSubmatch(token); m != nil {
		return memberByID(m[1], members)
	}
	if idRe.MatchString(token) {
		return memberByID(token, members)
	}
	for _, member := range members {
		if member.User != nil && member.User.Username == token {
			return member
		}
	}
	for _, member := range members {
		if displayName(member) == token {
			return member
		}
	}
	lower := strings.ToLower(token)
	for _, member := range members {
		if member.User == nil {
			continue
		}
		if strings.Contains(strings.ToLower(member.User.Username), lower) ||
			strings.Contains(strings.ToLower(displayName(member)), lower) {
			return member
		}
	}
	return nil
}

func memberByID(id string, members []*discordgo.Member) *discordgo.Member {
	for _, member := range members {
		if member.User != nil && member.User.ID == id {
			return member
		}
	}
	return nil
}
