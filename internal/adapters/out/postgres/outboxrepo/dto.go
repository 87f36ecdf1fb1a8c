// Package outboxrepo stores outbox messages in the same database, and so the
// same transaction, as the aggregates that raised them.
package outboxrepo

import (
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/outbox"
)

type MessageDTO struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	EventType   string    `gorm:"size:128;not null"`
	AggregateID string    `gorm:"type:varchar(36);not null;index"`
	Payload     []byte    `gorm:"not null"`
	Status      string    `gorm:"size:16;not null;index:idx_outbox_status_created,priority:1"`
	Attempts    int       `gorm:"not null"`
	LastError   string
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false;index:idx_outbox_status_created,priority:2"`
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) MessageDTO {
	var publishedAt *time.Time
	if p := m.PublishedAt(); p != nil {
		utc := p.UTC()
		publishedAt = &utc
	}
	return MessageDTO{
		ID:          m.ID().String(),
		EventType:   m.EventType(),
		AggregateID: m.AggregateID().String(),
		Payload:     m.Payload(),
		Status:      string(m.Status()),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt().UTC(),
		PublishedAt: publishedAt,
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromString(dto.AggregateID)
	if err != nil {
		return nil, err
	}
	var publishedAt *time.Time
	if dto.PublishedAt != nil {
		utc := dto.PublishedAt.UTC()
		publishedAt = &utc
	}

	return outbox.Restore(outbox.RestoreParams{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		Status:      outbox.Status(dto.Status),
		Attempts:    dto.Attempts,
		LastError:   dto.LastError,
		CreatedAt:   dto.CreatedAt.UTC(),
		PublishedAt: publishedAt,
	})
}
