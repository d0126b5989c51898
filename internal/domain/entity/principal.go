package entity

import "github.com/google/uuid"

// Principal is the account bound to the current request, reloaded from the
// store on every request. Shop is nil unless the account owns a shop.
type Principal struct {
	Account *Account
	Shop    *ShopProfile
}

// AccountID returns the id of the authenticated account.
func (p *Principal) AccountID() uuid.UUID {
	return p.Account.ID
}

// Role returns the role of the authenticated account.
func (p *Principal) Role() Role {
	return p.Account.Role
}
