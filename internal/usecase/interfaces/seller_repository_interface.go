package interfaces

import (
	"context"

	"presupuestos_service/internal/domain/entities"
)

type ISellerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Seller, error)
	List(ctx context.Context) ([]entities.Seller, error)
}
