// Package repository persists and reconstructs the domain aggregates.
//
// A scheme is always loaded whole: every revision row is read back and
// replayed through the ledger update operations, so the ledger invariants
// are re-checked on every load. Closing a revision is persisted as an update
// of the effective_date_to column on the existing row, opening one as an
// insert. Revision rows are never deleted outside Clear.
package repository

import "github.com/capital-schemes/backend/internal/domain"

type Authorities interface {
	Add(authorities ...domain.Authority) error
	Get(id uint) (*domain.Authority, error)
	List() ([]domain.Authority, error)
	Clear() error
}

type Users interface {
	Add(users ...*domain.User) error
	GetByAuthority(authorityID uint) ([]domain.User, error)
	Clear() error
}

type Schemes interface {
	Add(schemes ...*domain.Scheme) error
	Get(id uint) (*domain.Scheme, error)
	GetByAuthority(authorityID uint) ([]*domain.Scheme, error)
	Update(scheme *domain.Scheme) error
	Clear() error
}
