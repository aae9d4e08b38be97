// Package services contains stateless domain services for the shop bounded
// context. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/storefront/services/shop/domain/models"
)

// ValidateMemberName enforces the business rules for member names beyond
// the required-field check the HTTP boundary already performed. The
// uniqueness rule lives in the application layer (it needs the repository);
// this service covers everything checkable on the value alone.
//
// Business rules:
//   - No leading or trailing whitespace
//   - Must not be only whitespace characters
//   - No control characters (Unicode category Cc)
func ValidateMemberName(name string) error {
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("member name must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("member name must not be blank")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("member name must not contain control characters")
		}
	}

	return nil
}

// ValidateOrderRequest performs the cross-entity checks for order placement
// that do not belong to any single aggregate.
func ValidateOrderRequest(member *models.Member, item *models.Item, count int) error {
	if member == nil {
		return fmt.Errorf("member cannot be nil")
	}
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	return nil
}
