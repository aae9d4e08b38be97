package services

import (
	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/services/shop/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Member *MemberService
	Item   *ItemService
	Order  *OrderService
}

// New wires all shop application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	memberRepo := postgres.NewMemberRepository(a.Db, a.EventBus)
	itemRepo := postgres.NewItemRepository(a.Db)
	orderRepo := postgres.NewOrderRepository(a.Db, a.EventBus)
	itemCache := cache.NewItemCache(a.Redis)
	return &Services{
		Member: NewMemberService(memberRepo),
		Item:   NewItemService(itemRepo, itemCache),
		Order:  NewOrderService(orderRepo, memberRepo, itemRepo, itemCache),
	}
}
