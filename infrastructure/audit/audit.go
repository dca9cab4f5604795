package audit

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"packlister/models"
)

// Entity types journalled by the document store.
const (
	EntityInvoice     = "invoice"
	EntityPackingList = "packing_list"
)

// Actions recorded against stored documents.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Service writes document events inside the caller transaction. Because
// saves are last-write-wins, the journal is the only place a superseded
// document version survives.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Write(ctx context.Context, tx bun.Tx, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return err
	}
	event := &models.DocumentEvent{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	_, err = tx.NewInsert().Model(event).Exec(ctx)
	return err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
