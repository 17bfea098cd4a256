package interfaces

import (
	"context"

	"presupuestos_service/internal/domain/entities"
)

// IProfileRepository reads "usuarios" documents keyed by identity id.
// A missing document yields a zero Profile and no error.
type IProfileRepository interface {
	GetByUID(ctx context.Context, uid string) (entities.Profile, error)
	Put(ctx context.Context, p entities.Profile) error
}

// IProfileCache holds resolved profiles by identity uid.
type IProfileCache interface {
	Get(uid string) (entities.Profile, bool)
	Set(uid string, p entities.Profile)
	Delete(uid string)
}
