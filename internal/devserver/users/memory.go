package users

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in a map. The dev backend starts empty on
// every run.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byLogin map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    map[string]*User{},
		byLogin: map[string]*User{},
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	login := strings.ToLower(user.UserName)
	if _, ok := r.byLogin[login]; ok {
		return nil, ErrAlreadyExists
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byID[u.ID] = &u
	r.byLogin[login] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byLogin[strings.ToLower(login)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// MemoryRefreshTokenRepository keeps refresh sessions in a map keyed by
// token hash.
type MemoryRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]RefreshToken
}

func NewMemoryRefreshTokenRepository() *MemoryRefreshTokenRepository {
	return &MemoryRefreshTokenRepository{tokens: map[string]RefreshToken{}}
}

func (r *MemoryRefreshTokenRepository) Create(ctx context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token.TokenHash]; ok {
		return ErrAlreadyExists
	}
	r.tokens[token.TokenHash] = *token
	return nil
}

func (r *MemoryRefreshTokenRepository) Take(ctx context.Context, hash string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[hash]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.tokens, hash)
	return &t, nil
}

func (r *MemoryRefreshTokenRepository) Delete(ctx context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, hash)
	return nil
}

func (r *MemoryRefreshTokenRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tokens), nil
}
