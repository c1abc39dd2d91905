package workflows

type WarmInput struct {
	Categories []string `json:"categories"`
	Limit      int      `json:"limit"`
}

type WarmProgress struct {
	Total       int               `json:"total"`
	Done        int               `json:"done"`
	Failed      int               `json:"failed"`
	Written     int               `json:"written"`
	PerCategory map[string]string `json:"per_category"`
}
