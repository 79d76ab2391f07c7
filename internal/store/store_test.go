package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.json"))
	cfg, err := s.Guild("g1")
	if err != nil {
		t.Fatalf("guild: %v", err)
	}
	if cfg.TicketCategoryID != "" || len(cfg.StaffRoleIDs) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := New(path)

	err := s.Update("g1", func(c *GuildConfig) {
		c.TicketCategoryID = "cat1"
		c.StaffRoleIDs = append(c.StaffRoleIDs, "r1", "r2")
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	err = s.Update("g1", func(c *GuildConfig) {
		c.TranscriptChannelID = "t1"
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	got, err := New(path).Guild("g1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TicketCategoryID != "cat1" {
		t.Fatalf("expected category cat1, got %q", got.TicketCategoryID)
	}
	if len(got.StaffRoleIDs) != 2 || got.StaffRoleIDs[1] != "r2" {
		t.Fatalf("staff roles lost: %+v", got.StaffRoleIDs)
	}
	if got.TranscriptChannelID != "t1" {
		t.Fatalf("expected transcript t1, got %q", got.TranscriptChannelID)
	}
}

func TestUpdateKeepsOtherGuilds(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.json"))
	_ = s.Update("g1", func(c *GuildConfig) { c.WelcomeChannelID = "w1" })
	_ = s.Update("g2", func(c *GuildConfig) { c.WelcomeChannelID = "w2" })

	g1, err := s.Guild("g1")
	if err != nil {
		t.Fatalf("guild g1: %v", err)
	}
	if g1.WelcomeChannelID != "w1" {
		t.Fatalf("g1 clobbered: %q", g1.WelcomeChannelID)
	}
}

func TestEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := New(path).Guild("g1"); err != nil {
		t.Fatalf("guild: %v", err)
	}
}

func TestEmojiDefault(t *testing.T) {
	var cfg GuildConfig
	if cfg.Emoji() != "✅" {
		t.Fatalf("expected default emoji, got %q", cfg.Emoji())
	}
	cfg.VerificationEmoji = "👍"
	if cfg.Emoji() != "👍" {
		t.Fatalf("expected configured emoji, got %q", cfg.Emoji())
	}
}
