package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// ArticleResponse is the response payload for a single article:
// {"article": {...}}.
type ArticleResponse struct {
	Article *model.Article `json:"article"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleListResponse wraps a listing: {"articles": [...]}. A nil slice is
// rendered as an empty array.
type ArticleListResponse struct {
	Articles []model.ArticleSummary `json:"articles"`
}

func NewArticleListResponse(articles []model.ArticleSummary) *ArticleListResponse {
	if articles == nil {
		articles = []model.ArticleSummary{}
	}

	return &ArticleListResponse{Articles: articles}
}

func (rd *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}

func NewCommentResponse(comment *model.Comment) *CommentResponse {
	return &CommentResponse{Comment: comment}
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CommentListResponse struct {
	Comments []model.Comment `json:"comments"`
}

func NewCommentListResponse(comments []model.Comment) *CommentListResponse {
	if comments == nil {
		comments = []model.Comment{}
	}

	return &CommentListResponse{Comments: comments}
}

func (rd *CommentListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
