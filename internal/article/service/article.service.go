package service

import (
	"context"
	"strings"
	"time"

	"blogsmith/internal/article/model"
	"blogsmith/internal/article/query"
	"blogsmith/internal/article/repository"
	"blogsmith/internal/generator"
	"blogsmith/pkg/logger"

	"github.com/google/uuid"
)

const msgDeleted = "Blog post deleted successfully"

// Notifier is told about every stored or removed article.
type Notifier interface {
	ArticleCreated(a model.Article)
	ArticleDeleted(id string, remaining int)
}

type ArticleService struct {
	Repo   repository.Repository
	Gen    generator.Generator
	Notify Notifier

	now   func() time.Time
	newID func() string
}

func NewArticleService(repo repository.Repository, gen generator.Generator, notify Notifier) *ArticleService {
	return &ArticleService{
		Repo:   repo,
		Gen:    gen,
		Notify: notify,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Generate asks the model for an article about topic and stores it.
func (s *ArticleService) Generate(ctx context.Context, topic string) (model.Article, error) {
	clean, err := generator.ValidateTopic(topic)
	if err != nil {
		return model.Article{}, err
	}

	text, err := s.Gen.Generate(ctx, generator.BuildPrompt(clean))
	if err != nil {
		logger.Sugar.Errorf("Generation failed for topic %q: %v", clean, err)
		return model.Article{}, err
	}
	return s.Create(ctx, text, clean)
}

// Create stores content under topic. Blank content is treated as an empty
// model response.
func (s *ArticleService) Create(ctx context.Context, content, topic string) (model.Article, error) {
	clean, err := generator.ValidateTopic(topic)
	if err != nil {
		return model.Article{}, err
	}
	if strings.TrimSpace(content) == "" {
		return model.Article{}, generator.ErrEmptyContent()
	}

	a := model.NewArticle(s.newID(), content, clean, s.now())
	if err := s.Repo.Insert(ctx, a); err != nil {
		logger.Sugar.Errorf("Failed to store article %s: %v", a.ID, err)
		return model.Article{}, err
	}
	logger.Sugar.Infof("Stored article %s on topic %q", a.ID, a.Topic)

	if s.Notify != nil {
		s.Notify.ArticleCreated(a)
	}
	return a, nil
}

func (s *ArticleService) List(ctx context.Context, q model.Query) (model.ListResult, error) {
	all, err := s.Repo.All(ctx)
	if err != nil {
		return model.ListResult{}, err
	}
	return query.Apply(all, q)
}

// Filter is List plus the normalized filters echoed back to the caller.
func (s *ArticleService) Filter(ctx context.Context, q model.Query) (model.ListResult, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return res, err
	}
	sortBy, order := query.NormalizeSort(q.SortBy, q.Order)
	res.Filters = &model.Filters{
		Search:   q.Search,
		Topics:   q.Topics,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		SortBy:   sortBy,
		Order:    order,
	}
	return res, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (model.Article, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	remaining, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}
	logger.Sugar.Infof("Deleted article %s, %d remaining", id, remaining)

	if s.Notify != nil {
		s.Notify.ArticleDeleted(id, remaining)
	}
	return model.DeleteResult{Message: msgDeleted, DeletedID: id, RemainingCount: remaining}, nil
}

func (s *ArticleService) Stats(ctx context.Context) (model.Stats, error) {
	all, err := s.Repo.All(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return query.Stats(all), nil
}
