package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/models/m_product"
	"github.com/murkotick/product-launch-service/internal/models/m_user"
	"github.com/murkotick/product-launch-service/internal/pkg/committer"
)

var (
	errNoTransaction      = errors.New("repo: unit of work has no open transaction")
	errTransactionStarted = errors.New("repo: unit of work already started")
)

// UnitOfWorkFactory creates Spanner-backed units of work.
type UnitOfWorkFactory struct {
	adapter  *committer.Adapter
	products *ProductRepo
	outbox   *OutboxRepo
	audit    *AuditRepo
}

func NewUnitOfWorkFactory(adapter *committer.Adapter) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		adapter:  adapter,
		products: NewProductRepo(),
		outbox:   NewOutboxRepo(),
		audit:    NewAuditRepo(),
	}
}

func (f *UnitOfWorkFactory) New() contracts.UnitOfWork {
	uow := &UnitOfWork{
		adapter: f.adapter,
		plan:    committer.NewPlan(),
	}
	uow.products = &txProductStore{uow: uow, repo: f.products, staged: map[int64]*domain.Product{}}
	uow.users = &txUserStore{uow: uow}
	uow.outbox = &txOutbox{uow: uow, repo: f.outbox}
	uow.audit = &txAudit{uow: uow, repo: f.audit}
	return uow
}

// UnitOfWork runs every repository call inside one Spanner read/write
// transaction. Writes are collected as mutations in a plan and buffered into
// the transaction on Save; the product store keeps an overlay of staged
// aggregates so reads observe earlier writes of the same unit of work.
type UnitOfWork struct {
	adapter *committer.Adapter
	tx      *committer.Tx
	plan    *committer.Plan

	products *txProductStore
	users    *txUserStore
	outbox   *txOutbox
	audit    *txAudit
}

func (u *UnitOfWork) Products() contracts.ProductStore { return u.products }
func (u *UnitOfWork) Users() contracts.UserStore       { return u.users }
func (u *UnitOfWork) Outbox() contracts.OutboxRepo     { return u.outbox }
func (u *UnitOfWork) Audit() contracts.AuditRepo       { return u.audit }

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errTransactionStarted
	}
	tx, err := u.adapter.Begin(ctx)
	if err != nil {
		return err
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWork) Save(ctx context.Context) error {
	if u.tx == nil {
		return errNoTransaction
	}
	return u.tx.Flush(u.plan)
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := u.Save(ctx); err != nil {
		return err
	}
	err := u.tx.Commit(ctx)
	u.reset()
	return commitError(err)
}

// productsByNameIndex is the unique index on products.name.
const productsByNameIndex = "products_by_name"

// commitError reports a unique-name violation raised at commit time as
// domain.ErrDuplicateProductName. Such a violation means a concurrent
// transaction committed the name after this one checked it.
func commitError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.AlreadyExists && strings.Contains(err.Error(), productsByNameIndex) {
		return errors.Wrap(domain.ErrDuplicateProductName, err.Error())
	}
	return err
}

// Rollback aborts the open transaction. Calling it without one is a no-op so
// callers can roll back unconditionally on their error path.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx.Rollback(ctx)
	u.reset()
	return nil
}

func (u *UnitOfWork) reset() {
	u.tx = nil
	u.plan.Reset()
	u.products.staged = map[int64]*domain.Product{}
	u.products.nextID = 0
}

func (u *UnitOfWork) requireTx() (*committer.Tx, error) {
	if u.tx == nil {
		return nil, errNoTransaction
	}
	return u.tx, nil
}

type txProductStore struct {
	uow    *UnitOfWork
	repo   *ProductRepo
	staged map[int64]*domain.Product
	nextID int64
}

func (s *txProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.staged[id]; ok {
		return p.Clone(), nil
	}
	tx, err := s.uow.requireTx()
	if err != nil {
		return nil, err
	}

	row, err := tx.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.ReadColumns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "product %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read product %d", id)
	}
	return decodeProduct(row)
}

func (s *txProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	tx, err := s.uow.requireTx()
	if err != nil {
		return nil, err
	}

	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
			strings.Join(m_product.ReadColumns, ", "), m_product.TableName, m_product.ColProductID),
	}
	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	seen := make(map[int64]bool, len(s.staged))
	var out []*domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list products")
		}
		p, err := decodeProduct(row)
		if err != nil {
			return nil, err
		}
		if staged, ok := s.staged[p.ID()]; ok {
			p = staged.Clone()
		}
		seen[p.ID()] = true
		out = append(out, p)
	}

	// Products inserted by this unit of work are not visible to the query yet.
	var pending []*domain.Product
	for id, p := range s.staged {
		if !seen[id] {
			pending = append(pending, p.Clone())
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID() < pending[j].ID() })
	return append(out, pending...), nil
}

func (s *txProductStore) Add(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p == nil {
		return nil, errors.New("repo: nil product")
	}
	id, err := s.allocateID(ctx)
	if err != nil {
		return nil, err
	}
	p.AssignID(id)
	s.uow.plan.Add(s.repo.InsertMut(p))
	s.stage(p)
	return p, nil
}

func (s *txProductStore) Update(ctx context.Context, p *domain.Product) error {
	if p == nil || p.ID() == 0 {
		return errors.New("repo: update requires a persisted product")
	}
	if _, err := s.uow.requireTx(); err != nil {
		return err
	}
	s.uow.plan.Add(s.repo.UpdateMut(p))
	s.stage(p)
	return nil
}

func (s *txProductStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return false, nil
	}
	return err == nil, err
}

// stage records the persisted state of p in the overlay and marks p clean.
// Events stay on the caller's instance only.
func (s *txProductStore) stage(p *domain.Product) {
	p.Changes().Clear()
	c := p.Clone()
	c.ClearEvents()
	s.staged[p.ID()] = c
}

// allocateID hands out MAX(product_id)+1 style ids. The initial MAX read
// happens inside the transaction, so a concurrent insert of the same id makes
// one of the two commits abort.
func (s *txProductStore) allocateID(ctx context.Context) (int64, error) {
	tx, err := s.uow.requireTx()
	if err != nil {
		return 0, err
	}
	if s.nextID == 0 {
		stmt := spanner.Statement{
			SQL: fmt.Sprintf("SELECT IFNULL(MAX(%s), 0) FROM %s", m_product.ColProductID, m_product.TableName),
		}
		iter := tx.Query(ctx, stmt)
		defer iter.Stop()

		row, err := iter.Next()
		if err != nil {
			return 0, errors.Wrap(err, "allocate product id")
		}
		var max int64
		if err := row.Columns(&max); err != nil {
			return 0, err
		}
		s.nextID = max
	}
	s.nextID++
	return s.nextID, nil
}

type txUserStore struct {
	uow *UnitOfWork
}

func (s *txUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	tx, err := s.uow.requireTx()
	if err != nil {
		return false, err
	}
	_, err = tx.ReadRow(ctx, m_user.TableName, spanner.Key{id}, []string{m_user.ColUserID})
	if spanner.ErrCode(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read user %d", id)
	}
	return true, nil
}

type txOutbox struct {
	uow  *UnitOfWork
	repo *OutboxRepo
}

func (o *txOutbox) Append(ctx context.Context, e *contracts.OutboxEvent) error {
	if _, err := o.uow.requireTx(); err != nil {
		return err
	}
	o.uow.plan.Add(o.repo.InsertMut(e))
	return nil
}

type txAudit struct {
	uow  *UnitOfWork
	repo *AuditRepo
}

func (a *txAudit) Append(ctx context.Context, e *contracts.AuditEntry) error {
	if _, err := a.uow.requireTx(); err != nil {
		return err
	}
	a.uow.plan.Add(a.repo.InsertMut(e))
	return nil
}
