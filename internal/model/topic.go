package model

type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
