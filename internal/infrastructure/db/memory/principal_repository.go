// Package memory provides an in-process PrincipalRepository with the same
// single-writer, application-layer-uniqueness discipline as the MongoDB
// implementation. Used by tests and by deployments that embed the engine.
package memory

import (
	"context"
	"sync"

	"github.com/boardly/access-engine/internal/core/domain"
)

// PrincipalRepository stores principals in an id-keyed map. All records are
// cloned on the way in and out, so callers can never mutate stored state and
// readers never see a record mid-write.
type PrincipalRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Principal
	byUsername map[string]string // username -> id
	byEmail    map[string]string // email -> id
}

func NewPrincipalRepository() *PrincipalRepository {
	return &PrincipalRepository{
		byID:       make(map[string]*domain.Principal),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func clone(p *domain.Principal) *domain.Principal {
	c := *p
	return &c
}

func (r *PrincipalRepository) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[p.Username]; ok {
		return nil, domain.ErrDuplicateIdentity
	}
	if _, ok := r.byEmail[p.Email]; ok {
		return nil, domain.ErrDuplicateIdentity
	}

	r.byID[p.ID] = clone(p)
	r.byUsername[p.Username] = p.ID
	r.byEmail[p.Email] = p.ID
	return clone(p), nil
}

func (r *PrincipalRepository) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(p), nil
}

func (r *PrincipalRepository) FindByUsername(_ context.Context, username string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *PrincipalRepository) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *PrincipalRepository) Update(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[p.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if id, taken := r.byUsername[p.Username]; taken && id != p.ID {
		return nil, domain.ErrDuplicateIdentity
	}
	if id, taken := r.byEmail[p.Email]; taken && id != p.ID {
		return nil, domain.ErrDuplicateIdentity
	}

	delete(r.byUsername, current.Username)
	delete(r.byEmail, current.Email)

	r.byID[p.ID] = clone(p)
	r.byUsername[p.Username] = p.ID
	r.byEmail[p.Email] = p.ID
	return clone(p), nil
}

func (r *PrincipalRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byUsername, p.Username)
	delete(r.byEmail, p.Email)
	delete(r.byID, id)
	return nil
}
