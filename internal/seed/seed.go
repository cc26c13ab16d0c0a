// Package seed holds the fixture datasets loaded into a fresh store.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

//go:embed data
var embededFiles embed.FS

// Article is a fixture row. CreatedAt is Unix milliseconds.
type Article struct {
	Title         string `json:"title"`
	Topic         string `json:"topic"`
	Author        string `json:"author"`
	Body          string `json:"body"`
	CreatedAt     int64  `json:"created_at"`
	Votes         int64  `json:"votes"`
	ArticleImgURL string `json:"article_img_url"`
}

// Comment is a fixture row. ArticleID refers to the 1-based position of the
// article in Data.Articles, which is also its id after seeding.
type Comment struct {
	Body      string `json:"body"`
	ArticleID int64  `json:"article_id"`
	Author    string `json:"author"`
	Votes     int64  `json:"votes"`
	CreatedAt int64  `json:"created_at"`
}

type Data struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []Article
	Comments []Comment
}

// Load reads the named dataset (a directory under data/).
func Load(name string) (*Data, error) {
	dir := path.Join("data", name)
	if _, err := fs.Stat(embededFiles, dir); err != nil {
		return nil, fmt.Errorf("unknown dataset %q: %w", name, err)
	}

	d := &Data{}
	files := []struct {
		name string
		dst  interface{}
	}{
		{"topics.json", &d.Topics},
		{"users.json", &d.Users},
		{"articles.json", &d.Articles},
		{"comments.json", &d.Comments},
	}

	for _, f := range files {
		raw, err := embededFiles.ReadFile(path.Join(dir, f.name))
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", name, f.name, err)
		}
	}

	return d, nil
}

// Test returns the fixture dataset used by the test suites.
func Test() *Data {
	d, err := Load("test")
	if err != nil {
		panic(err)
	}

	return d
}
