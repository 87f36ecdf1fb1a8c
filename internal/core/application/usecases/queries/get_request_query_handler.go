package queries

import (
	"context"

	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
)

type GetRequestQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	policy     services.AccessPolicy
}

func NewGetRequestQueryHandler(uowFactory ports.UnitOfWorkFactory, policy services.AccessPolicy) GetRequestQueryHandler {
	return GetRequestQueryHandler{uowFactory: uowFactory, policy: policy}
}

func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (*request.TransportRequest, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.uowFactory.Create().RequestRepository().Get(ctx, query.RequestID())
	if err != nil {
		return nil, err
	}

	resource := services.RequestResource(found, found.Status())
	if err = h.policy.Require(query.Actor(), services.ActionViewRequest, resource); err != nil {
		return nil, err
	}

	return found, nil
}
