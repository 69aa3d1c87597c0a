package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blogsmith/internal/article/model"
	"blogsmith/pkg/logger"
)

type dialect struct {
	name   string
	schema string
}

var dialects = map[string]dialect{
	DriverPostgres: {
		name: DriverPostgres,
		schema: `CREATE TABLE IF NOT EXISTS articles (
			seq        BIGSERIAL,
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			topic      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	},
	DriverSQLite: {
		name: DriverSQLite,
		schema: `CREATE TABLE IF NOT EXISTS articles (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			title      TEXT NOT NULL,
			topic      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	},
}

// rebind rewrites "?" placeholders to "$n" for postgres.
func (d dialect) rebind(query string) string {
	if d.name != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	insertArticle = `INSERT INTO articles (id, title, topic, content, created_at) VALUES (?, ?, ?, ?, ?)`
	selectAll     = `SELECT id, title, topic, content, created_at FROM articles ORDER BY created_at DESC, seq DESC`
	selectByID    = `SELECT id, title, topic, content, created_at FROM articles WHERE id = ?`
	deleteByID    = `DELETE FROM articles WHERE id = ?`
	countAll      = `SELECT COUNT(*) FROM articles`
)

// SQLRepository stores articles in postgres or sqlite.
type SQLRepository struct {
	DB      *sql.DB
	dialect dialect
}

var _ Repository = (*SQLRepository)(nil)

// NewSQLRepository wraps db and creates the articles table when missing.
func NewSQLRepository(ctx context.Context, db *sql.DB, driver string) (*SQLRepository, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("repository: unsupported sql driver %q", driver)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		logger.Sugar.Errorf("Failed to create articles table: %v", err)
		return nil, err
	}
	return &SQLRepository{DB: db, dialect: d}, nil
}

func (r *SQLRepository) Insert(ctx context.Context, a model.Article) error {
	_, err := r.DB.ExecContext(ctx, r.dialect.rebind(insertArticle),
		a.ID, a.Title, a.Topic, a.Content, a.CreatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert article %s: %v", a.ID, err)
	}
	return err
}

func (r *SQLRepository) All(ctx context.Context) ([]model.Article, error) {
	rows, err := r.DB.QueryContext(ctx, selectAll)
	if err != nil {
		logger.Sugar.Errorf("Failed to list articles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Topic, &a.Content, &a.CreatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan article: %v", err)
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *SQLRepository) Get(ctx context.Context, id string) (model.Article, error) {
	var a model.Article
	err := r.DB.QueryRowContext(ctx, r.dialect.rebind(selectByID), id).
		Scan(&a.ID, &a.Title, &a.Topic, &a.Content, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, errNotFound()
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get article %s: %v", id, err)
		return model.Article{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, r.dialect.rebind(deleteByID), id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete article %s: %v", id, err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	var remaining int
	if err := tx.QueryRowContext(ctx, countAll).Scan(&remaining); err != nil {
		logger.Sugar.Errorf("Failed to count articles: %v", err)
		return 0, err
	}
	if affected == 0 {
		return remaining, errNotFound()
	}
	return remaining, tx.Commit()
}

func (r *SQLRepository) Close() error {
	return r.DB.Close()
}
