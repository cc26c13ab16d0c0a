package comment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/newsboard/internal/article"
	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/logging"
)

type Store interface {
	DeleteComment(ctx context.Context, id int64) error
}

type API struct {
	store Store
}

func NewAPI(s Store) *API {
	return &API{store: s}
}

// Routes mounts under /api/comments.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Delete("/{comment_id}", errresponse.Handle(a.DeleteComment)) // DELETE /comments/1

	return r
}

// DeleteComment removes an existing comment and answers 204 with no body.
func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) error {
	id, err := article.ParseID(chi.URLParam(r, "comment_id"))
	if err != nil {
		return err
	}

	if err := a.store.DeleteComment(r.Context(), id); err != nil {
		return err
	}

	logging.FromContext(r.Context()).Debugw("comment deleted", "comment_id", id)
	w.WriteHeader(http.StatusNoContent)

	return nil
}
