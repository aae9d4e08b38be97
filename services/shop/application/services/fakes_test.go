package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/shop/domain"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// In-memory repository fakes. They honor the same sentinel-error contracts
// as the postgres implementations so service tests exercise real error
// paths without a database.

type fakeMemberRepo struct {
	members map[uuid.UUID]*models.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID]*models.Member)}
}

func (r *fakeMemberRepo) Save(_ context.Context, member *models.Member) error {
	for _, m := range r.members {
		if m.Name == member.Name {
			return domain.ErrDuplicateMember
		}
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) FindAll(_ context.Context) ([]*models.Member, error) {
	out := make([]*models.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMemberRepo) FindByName(_ context.Context, name string) ([]*models.Member, error) {
	var out []*models.Member
	for _, m := range r.members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*models.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*models.Item)}
}

func (r *fakeItemRepo) Save(_ context.Context, item *models.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return it, nil
}

func (r *fakeItemRepo) FindAll(_ context.Context) ([]*models.Item, error) {
	out := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*models.Order
	seq     []uuid.UUID
	members *fakeMemberRepo
	saved   int
	updated int
}

func newFakeOrderRepo(members *fakeMemberRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*models.Order), members: members}
}

func (r *fakeOrderRepo) Save(_ context.Context, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		r.seq = append(r.seq, order.ID)
	}
	r.orders[order.ID] = order
	r.saved++
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.orders[order.ID] = order
	r.updated++
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// Search evaluates the same predicate semantics as the postgres
// implementation: status equality and case-sensitive member-name substring,
// AND-combined, ordered by placement, capped at MaxOrderSearchResults.
func (r *fakeOrderRepo) Search(_ context.Context, search models.OrderSearch) ([]*models.Order, error) {
	var out []*models.Order
	for _, id := range r.seq {
		o := r.orders[id]
		if search.Status != nil && o.Status != *search.Status {
			continue
		}
		if search.HasMemberName() {
			m, ok := r.members.members[o.MemberID]
			if !ok || !strings.Contains(m.Name, search.MemberName) {
				continue
			}
		}
		out = append(out, o)
		if len(out) == models.MaxOrderSearchResults {
			break
		}
	}
	return out, nil
}
