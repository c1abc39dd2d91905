package activities

type WarmViewsInput struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

type WarmViewsOutput struct {
	Written int `json:"written"`
}
