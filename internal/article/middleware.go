package article

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type ctxKey int8

const (
	ctxKeyArticle ctxKey = iota
)

// ParseID parses a path identifier. A failure is a *strconv.NumError,
// which the error mapper reports as a bad request.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. A malformed id stops
// here with a 400, an unknown one with a 404.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return errresponse.Handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := ParseID(chi.URLParam(r, "article_id"))
		if err != nil {
			return err
		}

		article, err := a.store.GetArticle(r.Context(), id)
		if err != nil {
			return err
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))

		return nil
	})
}

// FromContext returns the article loaded by ArticleCtx.
func FromContext(ctx context.Context) (*model.Article, bool) {
	article, ok := ctx.Value(ctxKeyArticle).(*model.Article)

	return article, ok
}
