package submissionguard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "maintenance-backend/models/db"
)

// Отметка действует только в рамках одной сессии браузера.
// Повторную отправку с другого устройства или после очистки cookie она не блокирует.

var ErrNoSession = errors.New("сессия не определена")

type Provider interface {
	// Check живая отметка сессии или nil, просроченная отметка удаляется
	Check(ctx context.Context, sessionID string) (*dbmodels.SubmissionGuard, error)
	Record(ctx context.Context, sessionID string, rec dbmodels.MaintenanceRequest) (dbmodels.SubmissionGuard, error)
	Clear(ctx context.Context, sessionID string) error
	Purge(ctx context.Context) (int, error)
}

var Instance Provider

func NewHandler(store Store, ttl time.Duration, loc *time.Location) {
	Instance = NewHandlerWithDeps(store, ttl, loc, time.Now)
}

func NewHandlerWithDeps(store Store, ttl time.Duration, loc *time.Location, now func() time.Time) Provider {
	if loc == nil {
		loc = time.UTC
	}
	return impl{
		store: store,
		ttl:   ttl,
		loc:   loc,
		now:   now,
	}
}

type impl struct {
	store Store
	ttl   time.Duration
	loc   *time.Location
	now   func() time.Time
}

func (i impl) Check(ctx context.Context, sessionID string) (*dbmodels.SubmissionGuard, error) {
	if sessionID == "" {
		return nil, nil
	}
	guard, err := i.store.Get(ctx, sessionID)
	if err != nil || guard == nil {
		return nil, err
	}
	if guard.IsLive(i.now()) {
		return guard, nil
	}
	if err = i.store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	log.WithField("session_id", sessionID).Debug("просроченная отметка сессии удалена")
	return nil, nil
}

func (i impl) Record(ctx context.Context, sessionID string, rec dbmodels.MaintenanceRequest) (dbmodels.SubmissionGuard, error) {
	if sessionID == "" {
		return dbmodels.SubmissionGuard{}, ErrNoSession
	}
	now := i.now().In(i.loc)
	guard := dbmodels.SubmissionGuard{
		Submitted:       true,
		SubmissionTime:  now,
		ExpiresAt:       now.Add(i.ttl),
		RequestID:       rec.ID,
		WorkOrderNumber: rec.WorkOrderNumber,
		TenantName:      rec.TenantName,
		TenantEmail:     rec.TenantEmail,
	}
	if err := i.store.Set(ctx, sessionID, guard, i.ttl); err != nil {
		return dbmodels.SubmissionGuard{}, err
	}
	return guard, nil
}

func (i impl) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return i.store.Delete(ctx, sessionID)
}

func (i impl) Purge(ctx context.Context) (int, error) {
	return i.store.Purge(ctx, i.now())
}
