package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"blogsmith/internal/article/model"
	"blogsmith/pkg/logger"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSlots = []byte("slots")
	// keyBlogs holds the whole collection as one JSON array.
	keyBlogs = []byte("blogs")
)

// BoltRepository persists the article collection as a single serialized slot,
// read on every query and rewritten on every mutation.
type BoltRepository struct {
	db *bolt.DB
}

var _ Repository = (*BoltRepository)(nil)

func OpenBolt(path string) (*BoltRepository, error) {
	if path == "" {
		return nil, errors.New("repository: missing bolt path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Insert(_ context.Context, a model.Article) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		articles, err := readSlot(b)
		if err != nil {
			return err
		}
		return writeSlot(b, slices.Insert(articles, 0, a))
	})
	if err != nil {
		logger.Sugar.Errorf("Failed to insert article %s: %v", a.ID, err)
	}
	return err
}

func (r *BoltRepository) All(_ context.Context) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		articles, err = readSlot(tx.Bucket(bucketSlots))
		return err
	})
	if err != nil {
		logger.Sugar.Errorf("Failed to read articles: %v", err)
	}
	return articles, err
}

func (r *BoltRepository) Get(ctx context.Context, id string) (model.Article, error) {
	articles, err := r.All(ctx)
	if err != nil {
		return model.Article{}, err
	}
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Article{}, errNotFound()
}

func (r *BoltRepository) Delete(_ context.Context, id string) (int, error) {
	var remaining int
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		articles, err := readSlot(b)
		if err != nil {
			return err
		}
		remaining = len(articles)
		idx := slices.IndexFunc(articles, func(a model.Article) bool { return a.ID == id })
		if idx < 0 {
			return errNotFound()
		}
		articles = slices.Delete(articles, idx, idx+1)
		remaining = len(articles)
		return writeSlot(b, articles)
	})
	return remaining, err
}

func (r *BoltRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func readSlot(b *bolt.Bucket) ([]model.Article, error) {
	raw := b.Get(keyBlogs)
	if raw == nil {
		return nil, nil
	}
	var articles []model.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("decode blogs slot: %w", err)
	}
	return articles, nil
}

func writeSlot(b *bolt.Bucket, articles []model.Article) error {
	if articles == nil {
		articles = []model.Article{}
	}
	raw, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encode blogs slot: %w", err)
	}
	return b.Put(keyBlogs, raw)
}
