package store

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/seed"
)

const defaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS topics (
	slug TEXT PRIMARY KEY,
	description TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS articles (
	article_id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	topic TEXT NOT NULL REFERENCES topics(slug),
	author TEXT NOT NULL REFERENCES users(username),
	body TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	votes INTEGER NOT NULL DEFAULT 0 CHECK (typeof(votes) = 'integer'),
	article_img_url TEXT NOT NULL DEFAULT '` + defaultArticleImgURL + `'
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic)`,
	`CREATE TABLE IF NOT EXISTS comments (
	comment_id INTEGER PRIMARY KEY AUTOINCREMENT,
	body TEXT NOT NULL,
	article_id INTEGER NOT NULL REFERENCES articles(article_id),
	author TEXT NOT NULL REFERENCES users(username),
	votes INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id)`,
}

// dependants first
var tables = []string{"comments", "articles", "users", "topics"}

// ApplySchema creates any missing tables.
func (s *Store) ApplySchema(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}

	return nil
}

// Seed drops every table, recreates the schema and inserts d. Ids restart
// at 1, in the order rows appear in d.
func (s *Store) Seed(ctx context.Context, d *seed.Data) error {
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}

	if err := s.ApplySchema(ctx); err != nil {
		return err
	}

	for _, t := range d.Topics {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO topics (slug, description) VALUES (?, ?)`,
			t.Slug, t.Description); err != nil {
			return fmt.Errorf("seed topic %q: %w", t.Slug, err)
		}
	}

	for _, u := range d.Users {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`,
			u.Username, u.Name, u.AvatarURL); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}

	for _, a := range d.Articles {
		img := a.ArticleImgURL
		if img == "" {
			img = defaultArticleImgURL
		}

		if _, err := s.db.ExecContext(ctx, `
INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, a.Votes, img); err != nil {
			return fmt.Errorf("seed article %q: %w", a.Title, err)
		}
	}

	for i, c := range d.Comments {
		if _, err := s.db.ExecContext(ctx, `
INSERT INTO comments (body, article_id, author, votes, created_at)
VALUES (?, ?, ?, ?, ?)`,
			c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt); err != nil {
			return fmt.Errorf("seed comment %d: %w", i+1, err)
		}
	}

	return nil
}
