package article

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/articlerequest"
	"github.com/SergeyParamoshkin/newsboard/internal/articleresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/logging"
	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

var errNoArticle = errors.New("article missing from request context")

type API struct {
	store Store
}

func NewAPI(s Store) *API {
	return &API{store: s}
}

// Routes mounts under /api/articles.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", errresponse.Handle(a.ListArticles)) // GET /articles?topic=&sort_by=&order=

	r.Route("/{article_id}", func(r chi.Router) {
		r.Use(a.ArticleCtx)                                    // Load the *model.Article on the request context
		r.Get("/", errresponse.Handle(a.GetArticle))           // GET /articles/1
		r.Patch("/", errresponse.Handle(a.UpdateArticle))      // PATCH /articles/1
		r.Get("/comments", errresponse.Handle(a.ListComments)) // GET /articles/1/comments
		r.Post("/comments", errresponse.Handle(a.CreateComment))
	})

	return r
}

// ListArticles validates the topic, sort_by and order query parameters and
// renders the matching articles with their comment counts.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	articles, err := a.store.ListArticles(r.Context(), store.ArticleQuery{
		Topic:    query.Get("topic"),
		TopicSet: query.Has("topic"),
		SortBy:   query.Get("sort_by"),
		Order:    query.Get("order"),
	})
	if err != nil {
		return err
	}

	return render.Render(w, r, articleresponse.NewArticleListResponse(articles))
}

// GetArticle returns the specific Article. It just fetches the Article
// right off the context, as ArticleCtx already loaded it.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) error {
	article, ok := FromContext(r.Context())
	if !ok {
		return errNoArticle
	}

	return render.Render(w, r, articleresponse.NewArticleResponse(article))
}

// UpdateArticle applies the inc_votes increment and returns the updated
// Article.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) error {
	article, ok := FromContext(r.Context())
	if !ok {
		return errNoArticle
	}

	data := &articlerequest.VoteRequest{}
	if err := render.Bind(r, data); err != nil {
		return errresponse.ErrInvalidRequest(err)
	}

	updated, err := a.store.UpdateArticleVotes(r.Context(), article.ArticleID, *data.IncVotes)
	if err != nil {
		return err
	}

	logging.FromContext(r.Context()).Debugw("votes updated",
		"article_id", updated.ArticleID, "inc_votes", *data.IncVotes, "votes", updated.Votes)

	return render.Render(w, r, articleresponse.NewArticleResponse(updated))
}

// ListComments renders the article's comments, oldest first. The article
// is known to exist, so no comments is an empty list rather than a 404.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) error {
	article, ok := FromContext(r.Context())
	if !ok {
		return errNoArticle
	}

	comments, err := a.store.ListComments(r.Context(), article.ArticleID)
	if err != nil {
		return err
	}

	return render.Render(w, r, articleresponse.NewCommentListResponse(comments))
}

// CreateComment persists the posted comment and returns it
// back to the client as an acknowledgement.
func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) error {
	article, ok := FromContext(r.Context())
	if !ok {
		return errNoArticle
	}

	data := &articlerequest.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		return errresponse.ErrInvalidRequest(err)
	}

	comment, err := a.store.CreateComment(r.Context(), data.Comment(article.ArticleID))
	if err != nil {
		return err
	}

	render.Status(r, http.StatusCreated)

	return render.Render(w, r, articleresponse.NewCommentResponse(comment))
}
