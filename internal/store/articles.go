package store

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

const articleColumns = `article_id, title, topic, author, body, created_at, votes, article_img_url`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row scanner, extra ...interface{}) (model.Article, error) {
	var (
		a       model.Article
		created int64
	)

	dest := append([]interface{}{
		&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body, &created, &a.Votes, &a.ArticleImgURL,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return a, err
	}

	a.CreatedAt = fromMillis(created)

	return a, nil
}

// ListArticles validates q, checks the topic filter refers to an existing
// topic and returns the matching articles with their comment counts.
func (s *Store) ListArticles(ctx context.Context, q ArticleQuery) ([]model.ArticleSummary, error) {
	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}

	if q.hasTopic() {
		ok, err := s.TopicExists(ctx, q.Topic)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, errs.NotFound()
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleError("list articles", err)
	}
	defer rows.Close()

	articles := []model.ArticleSummary{}

	for rows.Next() {
		var count int64

		a, err := scanArticle(rows, &count)
		if err != nil {
			return nil, handleError("scan article", err)
		}

		articles = append(articles, model.ArticleSummary{Article: a, CommentCount: count})
	}

	if err := rows.Err(); err != nil {
		return nil, handleError("list articles", err)
	}

	return articles, nil
}

func (s *Store) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE article_id = ?`, id)

	a, err := scanArticle(row)
	if err != nil {
		return nil, handleError("get article", err)
	}

	return &a, nil
}

// UpdateArticleVotes adds inc (which may be negative) to the article's
// votes and returns the updated row. An increment that would take votes
// outside the int64 range is a bad request and leaves the row untouched.
func (s *Store) UpdateArticleVotes(ctx context.Context, id, inc int64) (*model.Article, error) {
	row := s.db.QueryRowContext(ctx, `
UPDATE articles SET votes = votes + ?
WHERE article_id = ?
	AND (? <= 0 OR votes <= ? - ?)
	AND (? >= 0 OR votes >= ? - ?)
RETURNING `+articleColumns,
		inc, id,
		inc, int64(math.MaxInt64), inc,
		inc, int64(math.MinInt64), inc)

	a, err := scanArticle(row)
	if err == nil {
		return &a, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, handleError("update article votes", err)
	}

	ok, err := s.articleExists(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errs.NotFound()
	}

	return nil, errs.BadRequest()
}

func (s *Store) articleExists(ctx context.Context, id int64) (bool, error) {
	var ok bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = ?)`, id).Scan(&ok)

	return ok, handleError("article exists", err)
}
