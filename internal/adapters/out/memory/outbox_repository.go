package memory

import (
	"context"
	"fmt"

	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/pkg/errs"
)

type outboxRepository struct {
	uow *UnitOfWork
}

func (r *outboxRepository) Add(_ context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	rec := messageRecord(message)
	return r.uow.exec(func(s *state) error {
		if _, ok := s.messages[rec.ID]; ok {
			return fmt.Errorf("outbox message %s already stored", rec.ID)
		}
		s.messages[rec.ID] = rec
		s.messageLog = append(s.messageLog, rec.ID)
		return nil
	})
}

func (r *outboxRepository) ListPending(_ context.Context, limit int) ([]*outbox.Message, error) {
	var pending []outbox.RestoreParams
	r.uow.store.read(func(s *state) {
		for _, id := range s.messageLog {
			rec := s.messages[id]
			if rec.Status != outbox.StatusPending {
				continue
			}
			pending = append(pending, rec)
			if limit > 0 && len(pending) == limit {
				return
			}
		}
	})

	messages := make([]*outbox.Message, 0, len(pending))
	for _, rec := range pending {
		m, err := restoreMessage(rec)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *outboxRepository) Update(_ context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	rec := messageRecord(message)
	return r.uow.exec(func(s *state) error {
		if _, ok := s.messages[rec.ID]; !ok {
			return errs.NewObjectNotFoundError("outbox message", rec.ID.String())
		}
		s.messages[rec.ID] = rec
		return nil
	})
}
