// Package outbox models domain events persisted alongside the state change that
// produced them, for later relay to subscribers.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or Restore")

type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// MaxAttempts is how many relay attempts a message gets before it is parked as failed.
const MaxAttempts = 5

type Message struct {
	id          kernel.UUID
	eventType   string
	aggregateID kernel.UUID
	payload     []byte
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewMessage encodes payload as JSON into a pending message.
func NewMessage(eventType string, aggregateID kernel.UUID, payload any, now time.Time) (*Message, error) {
	if strings.TrimSpace(eventType) == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return &Message{
		id:            kernel.NewUUID(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		payload:       raw,
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

type RestoreParams struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	Status      Status
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func Restore(p RestoreParams) (*Message, error) {
	if err := errors.Join(p.ID.Validate(), p.AggregateID.Validate()); err != nil {
		return nil, err
	}
	return &Message{
		id:            p.ID,
		eventType:     p.EventType,
		aggregateID:   p.AggregateID,
		payload:       p.Payload,
		status:        p.Status,
		attempts:      p.Attempts,
		lastError:     p.LastError,
		createdAt:     p.CreatedAt,
		publishedAt:   p.PublishedAt,
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) EventType() string {
	return m.eventType
}

func (m *Message) AggregateID() kernel.UUID {
	return m.aggregateID
}

func (m *Message) Payload() []byte {
	return m.payload
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) PublishedAt() *time.Time {
	return m.publishedAt
}

func (m *Message) MarkPublished(now time.Time) {
	m.status = StatusPublished
	m.attempts++
	m.lastError = ""
	m.publishedAt = &now
}

// MarkFailed records a failed attempt. The message stays pending until
// MaxAttempts is reached.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if m.attempts >= MaxAttempts {
		m.status = StatusFailed
	}
}
