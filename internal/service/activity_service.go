package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"umkm-invoice/internal/model"
	"umkm-invoice/internal/repository"

	"github.com/sirupsen/logrus"
)

// Live event names pushed to dashboard clients.
const (
	EventInvoiceCreated  = "invoice.created"
	EventProductCreated  = "product.created"
	EventProductDeleted  = "product.deleted"
	EventCustomerCreated = "customer.created"
	EventSettingsUpdated = "settings.updated"
)

// EventPublisher fans a notification out to connected clients. Publish must
// not block the caller.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// NoopPublisher discards every event.
var NoopPublisher EventPublisher = noopPublisher{}

// --- DTOs ---

type ActivityLogResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// --- Interface ---

type ActivityService interface {
	GetActivityLogs(ctx context.Context, page, limit int) ([]ActivityLogResponse, int64, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) GetActivityLogs(ctx context.Context, page, limit int) ([]ActivityLogResponse, int64, error) {
	logs, total, err := s.activityRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch activity logs: %w", err)
	}

	res := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, ActivityLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, total, nil
}

// --- Side effects ---

// sideEffects records activity and publishes events after a change has been
// committed. Failures are logged and never reach the caller.
type sideEffects struct {
	activityRepo repository.ActivityRepository
	events       EventPublisher
	log          *logrus.Logger
}

func newSideEffects(activityRepo repository.ActivityRepository, events EventPublisher, log *logrus.Logger) sideEffects {
	if events == nil {
		events = NoopPublisher
	}
	return sideEffects{activityRepo: activityRepo, events: events, log: log}
}

func (e sideEffects) record(ctx context.Context, action string, entityID uint, entityName string, details interface{}) {
	if e.activityRepo == nil {
		return
	}
	entry := &model.ActivityLog{
		Action:     action,
		EntityID:   fmt.Sprintf("%d", entityID),
		EntityName: entityName,
	}
	if payload, err := json.Marshal(details); err != nil {
		e.log.WithError(err).WithField("action", action).Warn("failed to encode activity details")
	} else {
		entry.Details = string(payload)
	}
	if err := e.activityRepo.Log(ctx, entry); err != nil {
		e.log.WithError(err).WithField("action", action).Warn("failed to write activity log")
	}
}

func (e sideEffects) publish(event string, payload interface{}) {
	e.events.Publish(event, payload)
}
