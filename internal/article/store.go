package article

import (
	"context"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

// Store is the persistence the article routes need.
type Store interface {
	ListArticles(ctx context.Context, q store.ArticleQuery) ([]model.ArticleSummary, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	UpdateArticleVotes(ctx context.Context, id, inc int64) (*model.Article, error)
	ListComments(ctx context.Context, articleID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, c model.NewComment) (*model.Comment, error)
}

var _ Store = (*store.Store)(nil)
