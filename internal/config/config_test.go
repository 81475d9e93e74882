package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/events"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/grammar"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("EVENTS_PUBLISHER", "mock")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "mock", cfg.Events.Publisher)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestCreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		config   EventConfig
		wantMock bool
	}{
		{name: "disabled", config: EventConfig{Enabled: false, Publisher: "kafka"}, wantMock: true},
		{name: "mock", config: EventConfig{Enabled: true, Publisher: "mock"}, wantMock: true},
		{name: "unknown falls back", config: EventConfig{Enabled: true, Publisher: "sqs"}, wantMock: true},
		{name: "channel", config: EventConfig{Enabled: true, Publisher: "channel", ReviewTopic: "reviews"}, wantMock: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := tt.config.CreateEventPublisher(logger)
			require.NoError(t, err)
			defer publisher.Close()

			_, isMock := publisher.(*events.MockEventPublisher)
			assert.Equal(t, tt.wantMock, isMock)
		})
	}
}

func TestLoadKindTable_Default(t *testing.T) {
	table, err := LoadKindTable("")
	require.NoError(t, err)

	for tag, kind := range grammar.DefaultKindTable() {
		assert.Equal(t, kind, table[tag], tag)
	}
	assert.Equal(t, models.KindSentenceFormation, table["frase"])
}

func TestLoadKindTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kinds:\n  exact-answer: [AE, type]\n  basic: [b]\n"), 0o600))

	table, err := LoadKindTable(path)
	require.NoError(t, err)
	assert.Equal(t, grammar.KindTable{
		"ae":   models.KindExactAnswer,
		"type": models.KindExactAnswer,
		"b":    models.KindBasic,
	}, table)

	_, err = LoadKindTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseKindTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: "version: 1\n"},
		{name: "unknown kind", data: "kinds:\n  essay: [e]\n"},
		{name: "conflicting tag", data: "kinds:\n  basic: [x]\n  ordering: [x]\n"},
		{name: "malformed", data: "kinds: [\n"},
		{name: "future version", data: "version: 2\nkinds:\n  basic: [b]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKindTable([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
