package usecase

import (
	"context"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"
)

type ISellerUseCase interface {
	ListSellers(ctx context.Context) ([]entities.Seller, error)
}

type SellerUseCase struct {
	repo interfaces.ISellerRepository
}

var _ ISellerUseCase = (*SellerUseCase)(nil)

func NewSellerUseCase(repo interfaces.ISellerRepository) *SellerUseCase {
	return &SellerUseCase{repo: repo}
}

func (u *SellerUseCase) ListSellers(ctx context.Context) ([]entities.Seller, error) {
	return u.repo.List(ctx)
}
