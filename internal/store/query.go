package store

import (
	"fmt"
	"strings"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
)

// ArticleQuery carries the raw listing parameters from the request.
// Empty SortBy and Order take their defaults. TopicSet marks a topic
// parameter that was present in the request, so an empty one still filters.
type ArticleQuery struct {
	Topic    string
	TopicSet bool
	SortBy   string
	Order    string
}

func (q ArticleQuery) hasTopic() bool {
	return q.TopicSet || q.Topic != ""
}

const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "DESC"
)

// sortColumns is the allow-list of sort_by values and the SQL they map to.
// Only these strings are ever interpolated into the ORDER BY clause.
var sortColumns = map[string]string{
	"article_id":      "a.article_id",
	"title":           "a.title",
	"topic":           "a.topic",
	"author":          "a.author",
	"body":            "a.body",
	"created_at":      "a.created_at",
	"date":            "a.created_at",
	"votes":           "a.votes",
	"article_img_url": "a.article_img_url",
	"comment_count":   "comment_count",
}

var orders = map[string]bool{
	"ASC":  true,
	"DESC": true,
}

const listArticlesSQL = `SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.article_img_url,
	COUNT(c.comment_id) AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id`

// orderBy validates the sort column and direction against the allow-lists
// and returns the ORDER BY clause body.
func (q ArticleQuery) orderBy() (string, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	col, ok := sortColumns[sortBy]
	if !ok {
		return "", errs.BadRequest()
	}

	order := strings.ToUpper(q.Order)
	if order == "" {
		order = DefaultOrder
	}

	if !orders[order] {
		return "", errs.BadRequest()
	}

	if col == "a.article_id" {
		return col + " " + order, nil
	}

	return fmt.Sprintf("%s %s, a.article_id %s", col, order, order), nil
}

// Build validates q and assembles the listing statement. The topic, when
// present, is bound as the only argument. Topic existence is not checked
// here.
func (q ArticleQuery) Build() (string, []interface{}, error) {
	orderBy, err := q.orderBy()
	if err != nil {
		return "", nil, err
	}

	var (
		b    strings.Builder
		args []interface{}
	)

	b.WriteString(listArticlesSQL)

	if q.hasTopic() {
		b.WriteString("\nWHERE a.topic = ?")

		args = append(args, q.Topic)
	}

	b.WriteString("\nGROUP BY a.article_id")
	b.WriteString("\nORDER BY ")
	b.WriteString(orderBy)

	return b.String(), args, nil
}
