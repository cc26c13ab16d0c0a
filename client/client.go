package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status int
	Msg    string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newsboard: %d %s", e.Status, e.Msg)
}

// ListOptions maps onto the /api/articles query string. Empty fields are
// left out so the server defaults apply.
type ListOptions struct {
	Topic  string
	SortBy string
	Order  string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}

	if o.Topic != "" {
		v.Set("topic", o.Topic)
	}

	if o.SortBy != "" {
		v.Set("sort_by", o.SortBy)
	}

	if o.Order != "" {
		v.Set("order", o.Order)
	}

	return v
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) Topics(ctx context.Context) ([]model.Topic, error) {
	var out struct {
		Topics []model.Topic `json:"topics"`
	}

	err := c.do(ctx, http.MethodGet, "/api/topics", nil, &out)

	return out.Topics, err
}

func (c *Client) Articles(ctx context.Context, opts ListOptions) ([]model.ArticleSummary, error) {
	path := "/api/articles"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}

	var out struct {
		Articles []model.ArticleSummary `json:"articles"`
	}

	err := c.do(ctx, http.MethodGet, path, nil, &out)

	return out.Articles, err
}

func (c *Client) Article(ctx context.Context, id int64) (*model.Article, error) {
	var out struct {
		Article *model.Article `json:"article"`
	}

	if err := c.do(ctx, http.MethodGet, articlePath(id), nil, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

func (c *Client) Comments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	var out struct {
		Comments []model.Comment `json:"comments"`
	}

	err := c.do(ctx, http.MethodGet, articlePath(articleID)+"/comments", nil, &out)

	return out.Comments, err
}

func (c *Client) PostComment(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	in := map[string]string{"username": username, "body": body}

	var out struct {
		Comment *model.Comment `json:"comment"`
	}

	if err := c.do(ctx, http.MethodPost, articlePath(articleID)+"/comments", in, &out); err != nil {
		return nil, err
	}

	return out.Comment, nil
}

// PatchVotes adds inc to the article's votes; inc may be negative.
func (c *Client) PatchVotes(ctx context.Context, articleID, inc int64) (*model.Article, error) {
	in := map[string]int64{"inc_votes": inc}

	var out struct {
		Article *model.Article `json:"article"`
	}

	if err := c.do(ctx, http.MethodPatch, articlePath(articleID), in, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+strconv.FormatInt(commentID, 10), nil, nil)
}

func articlePath(id int64) string {
	return "/api/articles/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
