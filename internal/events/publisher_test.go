package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRecord() *models.ReviewRecord {
	return &models.ReviewRecord{
		ID:                7,
		NoteID:            3,
		CardOrdinal:       2,
		Kind:              models.KindSingleChoice,
		IsCorrect:         models.BoolPtr(true),
		Verdict:           models.VerdictCorrect,
		SuggestedEase:     models.EaseGood,
		EffectiveDontKnow: false,
		CreatedAt:         time.Now(),
	}
}

func TestNewReviewEvaluatedEvent(t *testing.T) {
	event := NewReviewEvaluatedEvent(sampleRecord())

	assert.Equal(t, EventReviewEvaluated, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.NotEqual(t, event.ID, NewReviewEvaluatedEvent(sampleRecord()).ID)

	data, ok := event.Data.(ReviewEvaluatedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(3), data.NoteID)
	assert.Equal(t, 2, data.CardOrdinal)
	assert.Equal(t, models.VerdictCorrect, data.Verdict)
	assert.Equal(t, models.EaseGood, data.SuggestedEase)
}

func TestChannelEventPublisher(t *testing.T) {
	publisher, pubSub := NewChannelEventPublisher("reviews", testLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "reviews")
	require.NoError(t, err)

	event := NewReviewEvaluatedEvent(sampleRecord())
	require.NoError(t, publisher.PublishReviewEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventReviewEvaluated), msg.Metadata.Get("event_type"))
		assert.Equal(t, "flashcard-quiz-service", msg.Metadata.Get("source"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, "review.evaluated", decoded["type"])
		assert.Equal(t, "correct", decoded["data"].(map[string]interface{})["verdict"])
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(testLogger())

	require.NoError(t, publisher.PublishReviewEvent(context.Background(), NewReviewEvaluatedEvent(sampleRecord())))
	require.NoError(t, publisher.PublishReviewEvent(context.Background(),
		NewNoteImportedEvent("geo", &models.ImportSummary{CreatedNotes: []uint{1, 2}, SuccessCount: 2})))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventNoteImported, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}
