package bot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestInteractionUser(t *testing.T) {
	b := &Bot{}

	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "m1"}},
	}}
	if user := b.interactionUser(member); user == nil || user.ID != "m1" {
		t.Fatalf("expected member user, got %v", user)
	}

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "d1"},
	}}
	if user := b.interactionUser(dm); user == nil || user.ID != "d1" {
		t.Fatalf("expected direct user, got %v", user)
	}

	// member present but user missing must not panic
	bare := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{},
	}}
	if b.interactionUser(bare) != nil {
		t.Fatalf("expected nil for memberless interaction")
	}
}

func TestInteractionUserID(t *testing.T) {
	b := &Bot{}

	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "m1"}},
	}}
	if got := b.interactionUserID(member); got != "m1" {
		t.Fatalf("expected m1, got %q", got)
	}

	bare := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	if got := b.interactionUserID(bare); got != "" {
		t.Fatalf("expected blank actor, got %q", got)
	}
}

func restError(code int) error {
	return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: code}}
}

func TestErrorClassifiers(t *testing.T) {
	if !isUnknownChannel(restError(discordgo.ErrCodeUnknownChannel)) {
		t.Fatalf("unknown channel not classified")
	}
	if !isUnknownMessage(restError(discordgo.ErrCodeUnknownMessage)) {
		t.Fatalf("unknown message not classified")
	}
	if !isForbidden(restError(discordgo.ErrCodeMissingAccess)) {
		t.Fatalf("missing access not classified as forbidden")
	}
	if !isForbidden(restError(discordgo.ErrCodeCannotSendMessagesToThisUser)) {
		t.Fatalf("closed DMs not classified as forbidden")
	}

	if isUnknownMessage(restError(discordgo.ErrCodeUnknownChannel)) {
		t.Fatalf("unknown channel must not read as unknown message")
	}
	if isUnknownChannel(errors.New("transport failure")) {
		t.Fatalf("plain errors must not classify")
	}
	if isForbidden(&discordgo.RESTError{}) {
		t.Fatalf("rest error without body must not classify")
	}
}

func TestErrorClassifiersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("edit status message: %w", restError(discordgo.ErrCodeUnknownMessage))
	if !isUnknownMessage(wrapped) {
		t.Fatalf("wrapped rest error not classified")
	}
}
