// Package memdb is an in-memory stand-in for the Postgres repositories.
// It enforces the schema's unique and foreign key constraints, and
// WithTransaction restores a snapshot when the unit of work fails, so
// service tests can assert all-or-nothing behaviour without a database.
package memdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	categorymodel "roll-backend/internal/domains/category/model"
	commentmodel "roll-backend/internal/domains/comment/model"
	placemodel "roll-backend/internal/domains/place/model"
	usermodel "roll-backend/internal/domains/user/model"
	"roll-backend/pkg/database"
)

type tables struct {
	categories map[uuid.UUID]categorymodel.Category
	users      map[uuid.UUID]usermodel.User
	places     map[uuid.UUID]placemodel.Place
	infos      map[uuid.UUID]placemodel.InfoPrivPlace
	comments   map[uuid.UUID]commentmodel.Comment
	seq        map[uuid.UUID]int64
}

func newTables() tables {
	return tables{
		categories: map[uuid.UUID]categorymodel.Category{},
		users:      map[uuid.UUID]usermodel.User{},
		places:     map[uuid.UUID]placemodel.Place{},
		infos:      map[uuid.UUID]placemodel.InfoPrivPlace{},
		comments:   map[uuid.UUID]commentmodel.Comment{},
		seq:        map[uuid.UUID]int64{},
	}
}

func (t tables) clone() tables {
	out := newTables()
	for k, v := range t.categories {
		out.categories[k] = v
	}
	for k, v := range t.users {
		out.users[k] = cloneUser(v)
	}
	for k, v := range t.places {
		out.places[k] = clonePlace(v)
	}
	for k, v := range t.infos {
		out.infos[k] = v
	}
	for k, v := range t.comments {
		out.comments[k] = v
	}
	for k, v := range t.seq {
		out.seq[k] = v
	}
	return out
}

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu       sync.Mutex
	data     tables
	next     int64
	failures map[string]error

	// Commits and Rollbacks count finished units of work
	Commits   int
	Rollbacks int
}

func New() *Store {
	return &Store{
		data:     newTables(),
		failures: map[string]error{},
	}
}

// FailNext makes the next call of op return err, e.g. FailNext("user.AppendCnpj", err)
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// fail must be called with s.mu held
func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// stamp must be called with s.mu held
func (s *Store) stamp(id uuid.UUID) {
	s.next++
	s.data.seq[id] = s.next
}

// WithTransaction runs fn against the live tables and puts the snapshot
// back if fn fails. The repositories ignore the transaction handle.
func (s *Store) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// ========================================
// REPOSITORY ACCESSORS
// ========================================

func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Places() *PlaceRepository { return &PlaceRepository{s: s} }

func (s *Store) Infos() *InfoPrivPlaceRepository { return &InfoPrivPlaceRepository{s: s} }

func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// ========================================
// INSPECTION
// ========================================

// Counts returns the number of rows per table
func (s *Store) Counts() (users, places, infos, comments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.users), len(s.data.places), len(s.data.infos), len(s.data.comments)
}

// ========================================
// CONSTRAINT ERRORS
// ========================================

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "violates foreign key constraint"}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

// ========================================
// COPIES
// ========================================

func cloneUser(u usermodel.User) usermodel.User {
	if u.Cpf != nil {
		cpf := *u.Cpf
		u.Cpf = &cpf
	}
	if u.PhoneNumber != nil {
		phone := *u.PhoneNumber
		u.PhoneNumber = &phone
	}
	if u.CnpjOwner != nil {
		u.CnpjOwner = append([]string{}, u.CnpjOwner...)
	}
	return u
}

func clonePlace(p placemodel.Place) placemodel.Place {
	p.Tags = append([]string{}, p.Tags...)
	p.Category = nil
	p.InfoPrivPlace = nil
	p.Comments = nil
	return p
}

var _ database.TxManager = (*Store)(nil)
