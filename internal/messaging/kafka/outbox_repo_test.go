package kafka_test

import (
	"context"
	"testing"
	"time"

	"resto-ops/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "employee",
		AggregateID:   uuid.NewString(),
		EventType:     "employee.archived",
		Topic:         "employee-lifecycle",
		Payload:       []byte(`{"event_type":"employee.archived"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxCreate_UsesTransactionWhenGiven(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := pendingEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO lifecycle_outbox").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType, event.AggregateID,
			event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := kafka.NewOutboxRepository(db)
	require.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxListPending_ScansDueRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	due := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "attempts", "next_attempt_at",
	}).AddRow(
		"evt-1", "req-1", "employee", "rest-1", "employee.trashed",
		"employee-lifecycle", []byte(`{}`), kafka.OutboxStatusFailed, 2, due,
	)

	mock.ExpectQuery("FROM lifecycle_outbox").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := kafka.NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, 2, events[0].Attempts)
	assert.Equal(t, kafka.OutboxStatusFailed, events[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxMarkFailed_RecordsReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE lifecycle_outbox").
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := kafka.NewOutboxRepository(db)
	require.NoError(t, repo.MarkFailed(context.Background(), "evt-1", "broker unreachable"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := pendingEvent()
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}
