package usecase

import (
	"context"
	"fmt"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const profileCacheName = "profile"

// IProfileResolver maps an authenticated identity to its business profile.
type IProfileResolver interface {
	Resolve(ctx context.Context, id entities.Identity) (entities.Profile, error)
}

// ProfileResolver reads "usuarios" through a TTL cache. A missing profile
// document resolves to a guest profile; a failed read is an error, never a
// guest.
type ProfileResolver struct {
	repo    interfaces.IProfileRepository
	cache   interfaces.IProfileCache
	metrics interfaces.IMetrics
	logger  *zap.Logger
}

var _ IProfileResolver = (*ProfileResolver)(nil)

func NewProfileResolver(repo interfaces.IProfileRepository, cache interfaces.IProfileCache, metrics interfaces.IMetrics, logger *zap.Logger) *ProfileResolver {
	return &ProfileResolver{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

func (r *ProfileResolver) Resolve(ctx context.Context, id entities.Identity) (entities.Profile, error) {
	if p, ok := r.cache.Get(id.UID); ok {
		r.metrics.IncrCacheHit(profileCacheName)
		return p, nil
	}
	r.metrics.IncrCacheMiss(profileCacheName)

	stored, err := r.repo.GetByUID(ctx, id.UID)
	if err != nil {
		r.logger.Error("load user profile", zap.String("uid", id.UID), zap.Error(err))
		return entities.Profile{}, fmt.Errorf("load profile %s: %w", id.UID, err)
	}

	var p entities.Profile
	if stored.UID == "" {
		r.logger.Warn("profile document not found, using guest", zap.String("uid", id.UID))
		p = entities.GuestProfile(id)
	} else {
		p = entities.Profile{
			UID:      id.UID,
			Email:    id.Email,
			Name:     stored.Name,
			Role:     stored.Role,
			SellerID: stored.SellerID,
		}
		if p.Name == "" {
			p.Name = entities.GuestProfile(id).Name
		}
		if p.Role == "" {
			p.Role = entities.RoleGuest
		}
	}
	r.cache.Set(id.UID, p)
	return p, nil
}

// Watch evicts cached profiles whenever a session starts or ends, so a new
// sign-in always reads the current profile document. It returns when ctx is
// done or events is closed.
func (r *ProfileResolver) Watch(ctx context.Context, events <-chan entities.SessionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.metrics.IncrSessionEvent(string(ev.Kind))
			r.cache.Delete(ev.Identity.UID)
			r.logger.Debug("session event",
				zap.String("kind", string(ev.Kind)),
				zap.String("uid", ev.Identity.UID),
				zap.String("session_id", ev.SessionID),
			)
		}
	}
}
