package repository

import (
	"context"
	"slices"
	"sync"

	"blogsmith/internal/article/model"
)

// MemoryRepository keeps articles for the lifetime of the process.
type MemoryRepository struct {
	mu       sync.RWMutex
	articles []model.Article
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, a model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = slices.Insert(r.articles, 0, a)
	return nil
}

func (r *MemoryRepository) All(_ context.Context) ([]model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.articles), nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Article{}, errNotFound()
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.IndexFunc(r.articles, func(a model.Article) bool { return a.ID == id })
	if idx < 0 {
		return len(r.articles), errNotFound()
	}
	r.articles = slices.Delete(r.articles, idx, idx+1)
	return len(r.articles), nil
}

func (r *MemoryRepository) Close() error { return nil }
