package model

import "time"

type Comment struct {
	CommentID int64     `json:"comment_id"`
	ArticleID int64     `json:"article_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment holds the caller-supplied fields of a comment; the rest is
// generated on insert.
type NewComment struct {
	ArticleID int64
	Author    string
	Body      string
}
