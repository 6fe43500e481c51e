package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/cashewcorner/backend/internal/events"
	"github.com/cashewcorner/backend/internal/repository"
)

// AuditService persists authentication events as an audit trail.
type AuditService struct {
	dispatcher events.Dispatcher
	records    repository.AuthEventRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, records repository.AuthEventRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		records:    records,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to authentication events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.recordEvent)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.recordEvent)
	a.dispatcher.Subscribe(events.EventLogout, a.recordEvent)
	a.dispatcher.Subscribe(events.EventTokenRejected, a.recordEvent)
}

// RecentEvents returns the latest audit entries.
func (a *AuditService) RecentEvents(ctx context.Context, limit int) ([]repository.AuthEvent, error) {
	return a.records.ListRecent(ctx, limit)
}

func (a *AuditService) recordEvent(ctx context.Context, event events.Event) error {
	detail := ""
	if event.Payload != nil {
		if raw, err := json.Marshal(event.Payload); err == nil {
			detail = string(raw)
		}
	}

	record := &repository.AuthEvent{
		ID:         event.ID,
		EventType:  string(event.Type),
		Username:   event.Username,
		Email:      event.Email,
		Detail:     detail,
		OccurredAt: event.Timestamp,
	}
	if a.records == nil {
		a.logger.Debug("audit repository unavailable; event not persisted", zap.String("event_type", string(event.Type)))
		return nil
	}
	if err := a.records.Create(ctx, record); err != nil {
		// Auditing must never break the auth flow that emitted the event.
		a.logger.Warn("failed to persist auth event", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}
