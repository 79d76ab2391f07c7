package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// GuildConfig mirrors one entry of the servers mapping in the config
// document. Role and channel IDs are opaque; whether they still exist on the
// guild is checked lazily by the consuming handler.
type GuildConfig struct {
	TicketCategoryID     string   `json:"ticket_category_id,omitempty"`
	StaffRoleIDs         []string `json:"staff_role_ids,omitempty"`
	TranscriptChannelID  string   `json:"transcript_channel_id,omitempty"`
	ModerationRoleIDs    []string `json:"moderation_role_ids,omitempty"`
	WelcomeChannelID     string   `json:"welcome_channel_id,omitempty"`
	VerificationRoleID   string   `json:"verification_role_id,omitempty"`
	VerificationEmoji    string   `json:"verification_emoji,omitempty"`
	TebexVerifiedRoleID  string   `json:"tebex_verified_role_id,omitempty"`
	TebexLogChannelID    string   `json:"tebex_log_channel_id,omitempty"`
	FivemStatusChannelID string   `json:"fivem_status_channel_id,omitempty"`
	FivemStatusMessageID string   `json:"fivem_status_message_id,omitempty"`
}

func (c GuildConfig) Emoji() string {
	if c.VerificationEmoji == "" {
		return "✅"
	}
	return c.VerificationEmoji
}

func (c GuildConfig) HasStaffRole(roleIDs []string) bool {
	return containsAny(c.StaffRoleIDs, roleIDs)
}

func (c GuildConfig) HasModerationRole(roleIDs []string) bool {
	return containsAny(c.ModerationRoleIDs, roleIDs)
}

func containsAny(list, candidates []string) bool {
	set := make(map[string]struct{}, len(list))
	for _, id := range list {
		set[id] = struct{}{}
	}
	for _, id := range candidates {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

type document struct {
	Servers map[string]GuildConfig `json:"servers"`
}

// Store is the single writer for the guild config document. Reads load the
// whole file, writes replace it atomically; an absent file is an empty
// mapping, never an error.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Guild(guildID string) (GuildConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return GuildConfig{}, err
	}
	return doc.Servers[guildID], nil
}

// Update applies mutate to the guild's entry under the store lock, so a
// read-modify-write can never interleave with another writer.
func (s *Store) Update(guildID string, mutate func(*GuildConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	cfg := doc.Servers[guildID]
	mutate(&cfg)
	doc.Servers[guildID] = cfg
	return s.write(doc)
}

func (s *Store) read() (document, error) {
	doc := document{Servers: map[string]GuildConfig{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return document{}, err
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, err
	}
	if doc.Servers == nil {
		doc.Servers = map[string]GuildConfig{}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
