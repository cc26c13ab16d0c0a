package model

import "time"

// Article data model. CreatedAt is stored as Unix milliseconds and
// rendered as RFC 3339.
type Article struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"` // username
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int64     `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
}

// ArticleSummary is a listing row: the article plus its comment count,
// computed at query time.
type ArticleSummary struct {
	Article
	CommentCount int64 `json:"comment_count"`
}
