package topic

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type Store interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
}

type API struct {
	store Store
}

func NewAPI(s Store) *API {
	return &API{store: s}
}

// Routes mounts under /api/topics.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", errresponse.Handle(a.ListTopics))

	return r
}

type ListResponse struct {
	Topics []model.Topic `json:"topics"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (a *API) ListTopics(w http.ResponseWriter, r *http.Request) error {
	topics, err := a.store.ListTopics(r.Context())
	if err != nil {
		return err
	}

	if topics == nil {
		topics = []model.Topic{}
	}

	return render.Render(w, r, &ListResponse{Topics: topics})
}
