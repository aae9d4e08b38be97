package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	shopdomain "github.com/ghuser/storefront/services/shop/domain"
	"github.com/ghuser/storefront/services/shop/domain/models"
	"github.com/ghuser/storefront/services/shop/domain/repositories"
	domainsvcs "github.com/ghuser/storefront/services/shop/domain/services"
)

// MemberService orchestrates member registration and lookups.
// Event publishing is handled by the repository layer (outbox pattern).
type MemberService struct {
	repo repositories.MemberRepository
}

// NewMemberService returns a MemberService wired with the given repository.
func NewMemberService(repo repositories.MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

// Join registers a new member and returns its assigned ID.
//
// The duplicate-name check here is a fast path for a friendly error; two
// concurrent joins with the same name can both pass it. The unique index on
// members.name is the authoritative guard, and the repository maps its
// violation to the same ErrDuplicateMember, so callers handle one error
// either way.
func (s *MemberService) Join(ctx context.Context, name string, address models.Address) (uuid.UUID, error) {
	if err := domainsvcs.ValidateMemberName(name); err != nil {
		return uuid.Nil, fmt.Errorf("invalid member name: %w", err)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check member name: %w", err)
	}
	if len(existing) > 0 {
		return uuid.Nil, shopdomain.ErrDuplicateMember
	}

	member := models.NewMember(name, address)
	if err := s.repo.Save(ctx, member); err != nil {
		return uuid.Nil, fmt.Errorf("save member: %w", err)
	}
	return member.ID, nil
}

// FindMembers returns every registered member.
func (s *MemberService) FindMembers(ctx context.Context) ([]*models.Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// FindOne returns the member with the given ID.
func (s *MemberService) FindOne(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}
