package store

import (
	"context"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

func scanComment(row scanner) (model.Comment, error) {
	var (
		c       model.Comment
		created int64
	)

	if err := row.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &created); err != nil {
		return c, err
	}

	c.CreatedAt = fromMillis(created)

	return c, nil
}

// ListComments returns the article's comments oldest first. It does not
// check the article exists; an unknown id yields an empty slice.
func (s *Store) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+commentColumns+`
FROM comments
WHERE article_id = ?
ORDER BY created_at ASC, comment_id ASC`, articleID)
	if err != nil {
		return nil, handleError("list comments", err)
	}
	defer rows.Close()

	comments := []model.Comment{}

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, handleError("scan comment", err)
		}

		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, handleError("list comments", err)
	}

	return comments, nil
}

// CreateComment inserts c and returns the stored row. Both the article and
// the author must exist.
func (s *Store) CreateComment(ctx context.Context, c model.NewComment) (*model.Comment, error) {
	ok, err := s.articleExists(ctx, c.ArticleID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errs.NotFound()
	}

	if ok, err = s.UserExists(ctx, c.Author); err != nil {
		return nil, err
	}

	if !ok {
		return nil, errs.NotFound()
	}

	row := s.db.QueryRowContext(ctx, `
INSERT INTO comments (body, article_id, author, votes, created_at)
VALUES (?, ?, ?, 0, ?)
RETURNING `+commentColumns, c.Body, c.ArticleID, c.Author, toMillis(s.now()))

	created, err := scanComment(row)
	if err != nil {
		return nil, handleError("create comment", err)
	}

	return &created, nil
}

// DeleteComment removes the comment, or reports Not-Found when there is none.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = ?`, id)
	if err != nil {
		return handleError("delete comment", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return handleError("delete comment", err)
	}

	if n == 0 {
		return errs.NotFound()
	}

	return nil
}
