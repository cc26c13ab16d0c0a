package store

import (
	"context"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

func (s *Store) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, handleError("list topics", err)
	}
	defer rows.Close()

	topics := []model.Topic{}

	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, handleError("scan topic", err)
		}

		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, handleError("list topics", err)
	}

	return topics, nil
}

func (s *Store) TopicExists(ctx context.Context, slug string) (bool, error) {
	var ok bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM topics WHERE slug = ?)`, slug).Scan(&ok)

	return ok, handleError("topic exists", err)
}

func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	var ok bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username).Scan(&ok)

	return ok, handleError("user exists", err)
}
