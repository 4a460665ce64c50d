package repository

import (
	"fmt"
	"sort"

	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/models"
)

// MemoryAuthorities is an in-memory Authorities implementation for tests.
type MemoryAuthorities struct {
	authorities map[uint]domain.Authority
}

func NewMemoryAuthorities() *MemoryAuthorities {
	return &MemoryAuthorities{authorities: make(map[uint]domain.Authority)}
}

func (m *MemoryAuthorities) Add(authorities ...domain.Authority) error {
	for _, authority := range authorities {
		m.authorities[authority.ID] = authority
	}

	return nil
}

func (m *MemoryAuthorities) Get(id uint) (*domain.Authority, error) {
	authority, ok := m.authorities[id]
	if !ok {
		return nil, fmt.Errorf("%w authority matching your query", models.ErrResourceNotFound)
	}

	return &authority, nil
}

func (m *MemoryAuthorities) List() ([]domain.Authority, error) {
	authorities := make([]domain.Authority, 0, len(m.authorities))
	for _, authority := range m.authorities {
		authorities = append(authorities, authority)
	}

	sort.Slice(authorities, func(i, j int) bool { return authorities[i].ID < authorities[j].ID })
	return authorities, nil
}

func (m *MemoryAuthorities) Clear() error {
	m.authorities = make(map[uint]domain.Authority)
	return nil
}

// MemoryUsers is an in-memory Users implementation for tests.
type MemoryUsers struct {
	users  []domain.User
	nextID uint
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{nextID: 1}
}

func (m *MemoryUsers) Add(users ...*domain.User) error {
	for _, user := range users {
		if user.ID == 0 {
			user.ID = m.nextID
			m.nextID++
		}

		m.users = append(m.users, *user)
	}

	return nil
}

func (m *MemoryUsers) GetByAuthority(authorityID uint) ([]domain.User, error) {
	users := make([]domain.User, 0)
	for _, user := range m.users {
		if user.AuthorityID == authorityID {
			users = append(users, user)
		}
	}

	return users, nil
}

func (m *MemoryUsers) Clear() error {
	m.users = nil
	return nil
}

// MemorySchemes is an in-memory Schemes implementation for tests. Aggregates
// are copied on the way in and rebuilt on the way out, so callers never
// share ledger state with the store.
type MemorySchemes struct {
	schemes map[uint]*domain.Scheme
	nextID  uint
}

func NewMemorySchemes() *MemorySchemes {
	return &MemorySchemes{schemes: make(map[uint]*domain.Scheme), nextID: 1}
}

func (m *MemorySchemes) Add(schemes ...*domain.Scheme) error {
	for _, scheme := range schemes {
		if _, ok := m.schemes[scheme.ID]; ok {
			return fmt.Errorf("scheme %d already exists", scheme.ID)
		}

		copied, err := m.copy(scheme)
		if err != nil {
			return err
		}

		m.schemes[scheme.ID] = copied
	}

	return nil
}

func (m *MemorySchemes) Get(id uint) (*domain.Scheme, error) {
	scheme, ok := m.schemes[id]
	if !ok {
		return nil, fmt.Errorf("%w scheme matching your query", models.ErrResourceNotFound)
	}

	return m.copy(scheme)
}

func (m *MemorySchemes) GetByAuthority(authorityID uint) ([]*domain.Scheme, error) {
	ids := make([]uint, 0)
	for id, scheme := range m.schemes {
		if scheme.AuthorityID == authorityID {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	schemes := make([]*domain.Scheme, 0, len(ids))
	for _, id := range ids {
		scheme, err := m.copy(m.schemes[id])
		if err != nil {
			return nil, err
		}

		schemes = append(schemes, scheme)
	}

	return schemes, nil
}

func (m *MemorySchemes) Update(scheme *domain.Scheme) error {
	if _, ok := m.schemes[scheme.ID]; !ok {
		return fmt.Errorf("%w scheme matching your query", models.ErrResourceNotFound)
	}

	copied, err := m.copy(scheme)
	if err != nil {
		return err
	}

	m.schemes[scheme.ID] = copied
	return nil
}

func (m *MemorySchemes) Clear() error {
	m.schemes = make(map[uint]*domain.Scheme)
	return nil
}

// copy rebuilds an aggregate revision by revision, assigning ids to
// revisions that have none.
func (m *MemorySchemes) copy(scheme *domain.Scheme) (*domain.Scheme, error) {
	copied := domain.Scheme{
		ID:               scheme.ID,
		Name:             scheme.Name,
		AuthorityID:      scheme.AuthorityID,
		Type:             scheme.Type,
		FundingProgramme: scheme.FundingProgramme,
		BidStatus:        scheme.BidStatus,
	}

	for _, revision := range scheme.Funding.FinancialRevisions() {
		if revision.ID == 0 {
			revision.ID = m.nextID
			m.nextID++
		}

		if err := copied.Funding.UpdateFinancial(revision); err != nil {
			return nil, err
		}
	}

	for _, revision := range scheme.Milestones.MilestoneRevisions() {
		if revision.ID == 0 {
			revision.ID = m.nextID
			m.nextID++
		}

		if err := copied.Milestones.UpdateMilestone(revision); err != nil {
			return nil, err
		}
	}

	for _, revision := range scheme.Outputs.OutputRevisions() {
		if revision.ID == 0 {
			revision.ID = m.nextID
			m.nextID++
		}

		copied.Outputs.UpdateOutput(revision)
	}

	for _, review := range scheme.Reviews.AuthorityReviews() {
		if review.ID == 0 {
			review.ID = m.nextID
			m.nextID++
		}

		copied.Reviews.UpdateAuthorityReview(review)
	}

	return &copied, nil
}
