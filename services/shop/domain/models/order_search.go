package models

import "strings"

// MaxOrderSearchResults caps every order search. The cap is a hard
// truncation; there is no pagination past it.
const MaxOrderSearchResults = 1000

// OrderSearch describes an order query: an optional status filter and an
// optional case-sensitive substring match on the member name. It is a
// transient parameter object, never persisted. Present filters combine
// with AND; an empty search matches every order.
type OrderSearch struct {
	Status     *OrderStatus
	MemberName string
}

// HasMemberName reports whether the member-name filter is present and
// non-blank.
func (s OrderSearch) HasMemberName() bool {
	return strings.TrimSpace(s.MemberName) != ""
}
