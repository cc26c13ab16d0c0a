package store

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
	"github.com/SergeyParamoshkin/newsboard/internal/seed"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(":memory:", WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Seed(context.Background(), seed.Test()))

	return st
}

func TestListTopics(t *testing.T) {
	st := newTestStore(t)

	topics, err := st.ListTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 3)

	for _, tp := range topics {
		assert.NotEmpty(t, tp.Slug)
		assert.NotEmpty(t, tp.Description)
	}
}

func TestListArticlesDefault(t *testing.T) {
	st := newTestStore(t)

	articles, err := st.ListArticles(context.Background(), ArticleQuery{})
	require.NoError(t, err)
	require.Len(t, articles, 13)

	assert.True(t, sort.SliceIsSorted(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	}), "articles should be newest first")

	counts := map[int64]int64{}
	for _, a := range articles {
		counts[a.ArticleID] = a.CommentCount
	}

	assert.Equal(t, int64(11), counts[1])
	assert.Equal(t, int64(0), counts[2])
	assert.Equal(t, int64(2), counts[3])
}

func TestListArticlesRepeatable(t *testing.T) {
	st := newTestStore(t)

	first, err := st.ListArticles(context.Background(), ArticleQuery{SortBy: "topic"})
	require.NoError(t, err)

	second, err := st.ListArticles(context.Background(), ArticleQuery{SortBy: "topic"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListArticlesByTopic(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cats, err := st.ListArticles(ctx, ArticleQuery{Topic: "cats"})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "cats", cats[0].Topic)

	mitch, err := st.ListArticles(ctx, ArticleQuery{Topic: "mitch"})
	require.NoError(t, err)
	assert.Len(t, mitch, 12)

	paper, err := st.ListArticles(ctx, ArticleQuery{Topic: "paper"})
	require.NoError(t, err)
	assert.NotNil(t, paper)
	assert.Empty(t, paper)

	_, err = st.ListArticles(ctx, ArticleQuery{Topic: "dogs"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = st.ListArticles(ctx, ArticleQuery{TopicSet: true})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = st.ListArticles(ctx, ArticleQuery{Topic: "cats' OR '1'='1"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestListArticlesSorted(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	byVotes, err := st.ListArticles(ctx, ArticleQuery{SortBy: "votes", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, byVotes, 13)
	assert.Equal(t, int64(1), byVotes[12].ArticleID, "article 1 has the most votes")

	byTitle, err := st.ListArticles(ctx, ArticleQuery{SortBy: "title", Order: "ASC"})
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(byTitle, func(i, j int) bool {
		return byTitle[i].Title < byTitle[j].Title
	}))

	byCount, err := st.ListArticles(ctx, ArticleQuery{SortBy: "comment_count"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byCount[0].ArticleID)

	byID, err := st.ListArticles(ctx, ArticleQuery{SortBy: "article_id", Order: "Asc"})
	require.NoError(t, err)

	for i, a := range byID {
		assert.Equal(t, int64(i+1), a.ArticleID)
	}
}

func TestListArticlesRejectsUnknownSort(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, q := range []ArticleQuery{
		{SortBy: "password"},
		{SortBy: "votes; DROP TABLE articles"},
		{Order: "sideways"},
		{SortBy: "votes", Order: "descending"},
		{Topic: "dogs", SortBy: "nope"},
	} {
		_, err := st.ListArticles(ctx, q)
		assert.True(t, errors.Is(err, errs.ErrBadRequest), "%+v", q)
	}
}

func TestGetArticle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a, err := st.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ArticleID)
	assert.Equal(t, "Living in the shadow of a great man", a.Title)
	assert.Equal(t, "butter_bridge", a.Author)
	assert.Equal(t, int64(100), a.Votes)
	assert.Equal(t, time.UnixMilli(1594329060000).UTC(), a.CreatedAt)
	assert.NotEmpty(t, a.ArticleImgURL)

	_, err = st.GetArticle(ctx, 999)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUpdateArticleVotes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a, err := st.UpdateArticleVotes(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(110), a.Votes)

	a, err = st.UpdateArticleVotes(ctx, 1, -200)
	require.NoError(t, err)
	assert.Equal(t, int64(-90), a.Votes)

	got, err := st.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(-90), got.Votes)

	_, err = st.UpdateArticleVotes(ctx, 999, 1)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUpdateArticleVotesOutOfRange(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.UpdateArticleVotes(ctx, 1, math.MaxInt64)
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	got, err := st.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Votes)

	a, err := st.UpdateArticleVotes(ctx, 2, math.MinInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), a.Votes)

	_, err = st.UpdateArticleVotes(ctx, 2, -1)
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	a, err = st.UpdateArticleVotes(ctx, 2, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), a.Votes)

	_, err = st.UpdateArticleVotes(ctx, 999, math.MaxInt64)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	articles, err := st.ListArticles(ctx, ArticleQuery{SortBy: "votes"})
	require.NoError(t, err)
	assert.Len(t, articles, 13)
}

func TestListComments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	comments, err := st.ListComments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 11)

	for i, c := range comments {
		assert.Equal(t, int64(1), c.ArticleID)

		if i > 0 {
			assert.False(t, c.CreatedAt.Before(comments[i-1].CreatedAt), "comments should be oldest first")
		}
	}

	none, err := st.ListComments(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateComment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	c, err := st.CreateComment(ctx, model.NewComment{
		ArticleID: 2,
		Author:    "lurker",
		Body:      "finally, a comment",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(19), c.CommentID)
	assert.Equal(t, int64(2), c.ArticleID)
	assert.Equal(t, "lurker", c.Author)
	assert.Equal(t, "finally, a comment", c.Body)
	assert.Equal(t, int64(0), c.Votes)
	assert.Equal(t, fixedNow, c.CreatedAt)

	comments, err := st.ListComments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, *c, comments[0])
}

func TestCreateCommentMissingReferences(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateComment(ctx, model.NewComment{ArticleID: 999, Author: "lurker", Body: "x"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = st.CreateComment(ctx, model.NewComment{ArticleID: 1, Author: "nobody", Body: "x"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	comments, err := st.ListComments(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 11)
}

func TestDeleteComment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.DeleteComment(ctx, 1))

	err := st.DeleteComment(ctx, 1)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	comments, err := st.ListComments(ctx, 9)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(17), comments[0].CommentID)

	others, err := st.ListComments(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, others, 11)
}

func TestSeedResetsData(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.UpdateArticleVotes(ctx, 3, 5)
	require.NoError(t, err)
	require.NoError(t, st.DeleteComment(ctx, 10))

	require.NoError(t, st.Seed(ctx, seed.Test()))

	a, err := st.GetArticle(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.Votes)

	comments, err := st.ListComments(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
