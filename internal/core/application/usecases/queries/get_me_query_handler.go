package queries

import (
	"context"
	"errors"
	"fmt"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
)

type GetMeQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetMeQueryHandler(uowFactory ports.UnitOfWorkFactory) GetMeQueryHandler {
	return GetMeQueryHandler{uowFactory: uowFactory}
}

// Handle returns the stored summary, which never includes the password digest.
func (h GetMeQueryHandler) Handle(ctx context.Context, query GetMeQuery) (identity.Summary, error) {
	if err := query.Validate(); err != nil {
		return identity.Summary{}, err
	}

	found, err := h.uowFactory.Create().IdentityRepository().Get(ctx, query.Actor().ID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return identity.Summary{}, fmt.Errorf("%w: %s", errs.ErrIdentityNotFound, query.Actor().ID)
	}
	if err != nil {
		return identity.Summary{}, err
	}

	return found.Summary(), nil
}
