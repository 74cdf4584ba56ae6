// Package memory provides an in-process implementation of the product unit of
// work. Writes are staged per unit of work and applied atomically on Commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

var (
	errNoTransaction      = errors.New("memory: unit of work has no open transaction")
	errTransactionStarted = errors.New("memory: unit of work already started")
)

// Store holds the committed state. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	products      map[int64]*domain.Product
	users         map[int64]*domain.User
	outbox        []contracts.OutboxEvent
	audit         []contracts.AuditEntry
	nextProductID int64
	commits       int
	rollbacks     int
}

func NewStore() *Store {
	return &Store{
		products: make(map[int64]*domain.Product),
		users:    make(map[int64]*domain.User),
	}
}

// New returns a fresh unit of work over the store.
func (s *Store) New() contracts.UnitOfWork {
	return &UnitOfWork{store: s}
}

// AddUser stores u as committed state.
func (s *Store) AddUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

// SeedProduct stores p as committed state, assigning an id when p has none.
// The seeded product's events are discarded.
func (s *Store) SeedProduct(p *domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID() == 0 {
		s.nextProductID++
		p.AssignID(s.nextProductID)
	} else if p.ID() > s.nextProductID {
		s.nextProductID = p.ID()
	}
	p.ClearEvents()
	p.Changes().Clear()
	s.products[p.ID()] = p.Clone()
	return p
}

// Product returns a copy of the committed product with the given id.
func (s *Store) Product(id int64) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Products returns copies of every committed product ordered by id.
func (s *Store) Products() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedProducts()
}

func (s *Store) OutboxEvents() []contracts.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contracts.OutboxEvent(nil), s.outbox...)
}

func (s *Store) AuditEntries() []contracts.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contracts.AuditEntry(nil), s.audit...)
}

// Commits returns how many units of work committed.
func (s *Store) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// Rollbacks returns how many open units of work were rolled back.
func (s *Store) Rollbacks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rollbacks
}

// sortedProducts must be called with s.mu held.
func (s *Store) sortedProducts() []*domain.Product {
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// checkUniqueNames fails when a staged product would share its name with a
// different product after the staged writes are applied. s.mu must be held.
func (s *Store) checkUniqueNames(staged map[int64]*domain.Product) error {
	owner := make(map[string]int64, len(s.products)+len(staged))
	for id, p := range s.products {
		if _, ok := staged[id]; !ok {
			owner[p.Name()] = id
		}
	}

	ids := make([]int64, 0, len(staged))
	for id := range staged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		name := staged[id].Name()
		if other, ok := owner[name]; ok && other != id {
			return errors.Wrapf(domain.ErrDuplicateProductName, "name %q taken by product %d", name, other)
		}
		owner[name] = id
	}
	return nil
}

func (s *Store) allocateProductID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProductID++
	return s.nextProductID
}

// UnitOfWork stages writes until Commit. Reads merge staged writes over the
// committed state of the store.
type UnitOfWork struct {
	store  *Store
	active bool
	staged map[int64]*domain.Product
	outbox []contracts.OutboxEvent
	audit  []contracts.AuditEntry
}

func (u *UnitOfWork) Products() contracts.ProductStore { return productStore{u} }
func (u *UnitOfWork) Users() contracts.UserStore       { return userStore{u} }
func (u *UnitOfWork) Outbox() contracts.OutboxRepo     { return outboxRepo{u} }
func (u *UnitOfWork) Audit() contracts.AuditRepo       { return auditRepo{u} }

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return errTransactionStarted
	}
	u.active = true
	u.staged = make(map[int64]*domain.Product)
	u.outbox = nil
	u.audit = nil
	return nil
}

// Save is a no-op beyond checking the transaction: staged writes are already
// visible to reads of this unit of work.
func (u *UnitOfWork) Save(ctx context.Context) error {
	if !u.active {
		return errNoTransaction
	}
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return errNoTransaction
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "memory: commit")
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another unit of work may have committed the same name since this one
	// read the store. The transaction stays open so the caller can roll back.
	if err := s.checkUniqueNames(u.staged); err != nil {
		return err
	}
	for id, p := range u.staged {
		s.products[id] = p
	}
	s.outbox = append(s.outbox, u.outbox...)
	s.audit = append(s.audit, u.audit...)
	s.commits++

	u.active = false
	u.staged = nil
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if !u.active {
		return nil
	}
	u.active = false
	u.staged = nil
	u.outbox = nil
	u.audit = nil

	u.store.mu.Lock()
	u.store.rollbacks++
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) stage(p *domain.Product) {
	p.Changes().Clear()
	c := p.Clone()
	c.ClearEvents()
	u.staged[p.ID()] = c
}

type productStore struct{ u *UnitOfWork }

func (ps productStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if !ps.u.active {
		return nil, errNoTransaction
	}
	if p, ok := ps.u.staged[id]; ok {
		return p.Clone(), nil
	}
	if p, ok := ps.u.store.Product(id); ok {
		return p, nil
	}
	return nil, errors.Wrapf(domain.ErrProductNotFound, "product %d", id)
}

func (ps productStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	if !ps.u.active {
		return nil, errNoTransaction
	}
	committed := ps.u.store.Products()
	out := make([]*domain.Product, 0, len(committed)+len(ps.u.staged))
	seen := make(map[int64]bool, len(committed))
	for _, p := range committed {
		if staged, ok := ps.u.staged[p.ID()]; ok {
			p = staged.Clone()
		}
		seen[p.ID()] = true
		out = append(out, p)
	}
	for id, p := range ps.u.staged {
		if !seen[id] {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (ps productStore) Add(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if !ps.u.active {
		return nil, errNoTransaction
	}
	if p == nil {
		return nil, errors.New("memory: nil product")
	}
	p.AssignID(ps.u.store.allocateProductID())
	ps.u.stage(p)
	return p, nil
}

func (ps productStore) Update(ctx context.Context, p *domain.Product) error {
	if !ps.u.active {
		return errNoTransaction
	}
	if p == nil || p.ID() == 0 {
		return errors.New("memory: update requires a persisted product")
	}
	ps.u.stage(p)
	return nil
}

func (ps productStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := ps.GetByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return false, nil
	}
	return err == nil, err
}

type userStore struct{ u *UnitOfWork }

func (us userStore) Exists(ctx context.Context, id int64) (bool, error) {
	if !us.u.active {
		return false, errNoTransaction
	}
	us.u.store.mu.RLock()
	defer us.u.store.mu.RUnlock()
	_, ok := us.u.store.users[id]
	return ok, nil
}

type outboxRepo struct{ u *UnitOfWork }

func (o outboxRepo) Append(ctx context.Context, e *contracts.OutboxEvent) error {
	if !o.u.active {
		return errNoTransaction
	}
	o.u.outbox = append(o.u.outbox, *e)
	return nil
}

type auditRepo struct{ u *UnitOfWork }

func (a auditRepo) Append(ctx context.Context, e *contracts.AuditEntry) error {
	if !a.u.active {
		return errNoTransaction
	}
	a.u.audit = append(a.u.audit, *e)
	return nil
}
