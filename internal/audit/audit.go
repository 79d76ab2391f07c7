package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	LevelInfo = "INFO"
	LevelWarn = "WARN"
	LevelCrit = "CRIT"
)

type Entry struct {
	GuildID   string
	ActorID   string
	TargetID  string
	Event     string
	Level     string
	Details   string
	CreatedAt time.Time
}

type Logger struct {
	logger *zap.Logger
	notify func(context.Context, Entry)
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

// SetNotifier installs a callback that mirrors entries to an operator.
func (l *Logger) SetNotifier(notify func(context.Context, Entry)) {
	l.notify = notify
}

func (l *Logger) Log(ctx context.Context, level, guildID, actorID, targetID, event, details string) {
	entry := Entry{
		GuildID:   guildID,
		ActorID:   actorID,
		TargetID:  targetID,
		Event:     event,
		Level:     level,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if l.notify != nil {
		l.notify(ctx, entry)
	}
	l.logger.Info("audit",
		zap.String("level", level),
		zap.String("guild_id", guildID),
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
		zap.String("event", event),
		zap.String("details", details))
}
