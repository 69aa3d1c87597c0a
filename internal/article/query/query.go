// Package query filters, sorts and paginates an in-memory article slice.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"blogsmith/internal/apperr"
	"blogsmith/internal/article/model"
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Apply runs filters (search, topics, date range) in that order, then sorts,
// then slices by offset and limit. Offset only applies when a positive limit
// is given. Articles with equal sort keys keep their stored order.
func Apply(all []model.Article, q model.Query) (model.ListResult, error) {
	from, to, err := dateBounds(q.DateFrom, q.DateTo)
	if err != nil {
		return model.ListResult{}, err
	}

	filtered := make([]model.Article, 0, len(all))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	topics := cleanTopics(q.Topics)
	for _, a := range all {
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if len(topics) > 0 && !matchesTopics(a, topics) {
			continue
		}
		if !from.IsZero() && a.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && a.CreatedAt.After(to) {
			continue
		}
		filtered = append(filtered, a)
	}

	slices.SortStableFunc(filtered, comparator(q.SortBy, q.Order))

	total := len(filtered)
	offset := max(q.Offset, 0)
	res := model.ListResult{
		Total:      total,
		TotalBlogs: len(all),
		Offset:     offset,
		Limit:      total,
	}
	if q.Limit != nil && *q.Limit > 0 {
		limit := *q.Limit
		start := min(offset, total)
		end := min(offset+limit, total)
		filtered = filtered[start:end]
		res.Limit = limit
		res.HasMore = offset+limit < total
	}
	res.Blogs = filtered
	return res, nil
}

// NormalizeSort maps unknown sort keys and orders to the defaults.
func NormalizeSort(sortBy, order string) (string, string) {
	switch sortBy {
	case model.SortByTitle, model.SortByTopic:
	default:
		sortBy = model.SortByCreatedAt
	}
	if order != model.OrderAsc {
		order = model.OrderDesc
	}
	return sortBy, order
}

func comparator(sortBy, order string) func(a, b model.Article) int {
	sortBy, order = NormalizeSort(sortBy, order)
	var key func(a, b model.Article) int
	switch sortBy {
	case model.SortByTitle:
		key = func(a, b model.Article) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case model.SortByTopic:
		key = func(a, b model.Article) int {
			return cmp.Compare(strings.ToLower(a.Topic), strings.ToLower(b.Topic))
		}
	default:
		key = func(a, b model.Article) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	if order == model.OrderAsc {
		return key
	}
	return func(a, b model.Article) int { return key(b, a) }
}

func matchesSearch(a model.Article, needle string) bool {
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Content), needle) ||
		strings.Contains(strings.ToLower(a.Topic), needle)
}

func matchesTopics(a model.Article, topics []string) bool {
	topic := strings.ToLower(a.Topic)
	for _, t := range topics {
		if strings.Contains(topic, t) {
			return true
		}
	}
	return false
}

func cleanTopics(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// dateBounds parses the inclusive range. A date-only upper bound covers the
// whole day.
func dateBounds(fromRaw, toRaw string) (time.Time, time.Time, error) {
	var from, to time.Time
	if s := strings.TrimSpace(fromRaw); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return from, to, apperr.Validation("Invalid dateFrom: " + s)
		}
		from = t
	}
	if s := strings.TrimSpace(toRaw); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return from, to, apperr.Validation("Invalid dateTo: " + s)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = t
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, bool, error) {
	var err error
	for i, layout := range dateLayouts {
		t, perr := time.ParseInLocation(layout, s, time.UTC)
		if perr == nil {
			return t, i == len(dateLayouts)-1, nil
		}
		err = perr
	}
	return time.Time{}, false, err
}

// Stats summarizes the stored articles, newest first.
func Stats(all []model.Article) model.Stats {
	st := model.Stats{
		TotalBlogs:        len(all),
		TopicDistribution: make(map[string]int),
	}
	if len(all) == 0 {
		return st
	}
	totalLen := 0
	for _, a := range all {
		st.TopicDistribution[a.Topic]++
		totalLen += len([]rune(a.Content))
	}
	st.UniqueTopics = len(st.TopicDistribution)
	latest, oldest := all[0], all[len(all)-1]
	st.LatestBlog = &latest
	st.OldestBlog = &oldest
	st.AverageContentLength = (totalLen + len(all)/2) / len(all)
	return st
}
