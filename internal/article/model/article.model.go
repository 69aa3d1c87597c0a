package model

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	SortByCreatedAt = "createdAt"
	SortByTitle     = "title"
	SortByTopic     = "topic"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	MaxTopicLength = 100

	// TimestampLayout keeps three fractional digits, so every createdAt on
	// the wire has the same width.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON writes CreatedAt in UTC with millisecond precision.
func (a Article) MarshalJSON() ([]byte, error) {
	type plain Article
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain(a), a.CreatedAt.UTC().Format(TimestampLayout)})
}

// NewArticle derives title and topic from the user-supplied topic: the topic
// is trimmed and lower-cased, the title is that topic with its first letter
// upper-cased. The caller validates topic and content first.
func NewArticle(id, content, topic string, now time.Time) Article {
	normalized := strings.ToLower(strings.TrimSpace(topic))
	return Article{
		ID:        id,
		Title:     capitalize(normalized),
		Topic:     normalized,
		Content:   strings.TrimSpace(content),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

type Query struct {
	Search   string   `json:"search,omitempty"`
	Topics   []string `json:"topics,omitempty"`
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
	SortBy   string   `json:"sortBy,omitempty"`
	Order    string   `json:"order,omitempty"`
	Limit    *int     `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// Filters is the part of a Query echoed back by the advanced filter endpoint.
type Filters struct {
	Search   string   `json:"search,omitempty"`
	Topics   []string `json:"topics,omitempty"`
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
	SortBy   string   `json:"sortBy"`
	Order    string   `json:"order"`
}

type ListResult struct {
	Blogs      []Article `json:"blogs"`
	Total      int       `json:"total"`
	TotalBlogs int       `json:"totalBlogs"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	HasMore    bool      `json:"hasMore"`
	Filters    *Filters  `json:"filters,omitempty"`
}

type DeleteResult struct {
	Message        string `json:"message"`
	DeletedID      string `json:"deletedId"`
	RemainingCount int    `json:"remainingCount"`
}

type Stats struct {
	TotalBlogs           int            `json:"totalBlogs"`
	UniqueTopics         int            `json:"uniqueTopics"`
	TopicDistribution    map[string]int `json:"topicDistribution"`
	LatestBlog           *Article       `json:"latestBlog"`
	OldestBlog           *Article       `json:"oldestBlog"`
	AverageContentLength int            `json:"averageContentLength"`
}

type GenerateRequest struct {
	Topic   any     `json:"topic"`
	Content *string `json:"content,omitempty"`
}
