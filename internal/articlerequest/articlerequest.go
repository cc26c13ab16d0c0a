// Package articlerequest holds the request payloads accepted by the
// article routes. Bind runs after the JSON body is decoded.
package articlerequest

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

var validate = validator.New()

// VoteRequest is the body of PATCH /api/articles/{article_id}.
// IncVotes is a pointer so an absent field is told apart from zero.
type VoteRequest struct {
	IncVotes *int64 `json:"inc_votes" validate:"required"`
}

func (v *VoteRequest) Bind(r *http.Request) error {
	return validate.Struct(v)
}

// CommentRequest is the body of POST /api/articles/{article_id}/comments.
type CommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	c.Username = strings.TrimSpace(c.Username)
	c.Body = strings.TrimSpace(c.Body)

	return validate.Struct(c)
}

// Comment converts the payload for the given article.
func (c *CommentRequest) Comment(articleID int64) model.NewComment {
	return model.NewComment{
		ArticleID: articleID,
		Author:    c.Username,
		Body:      c.Body,
	}
}
