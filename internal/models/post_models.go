package models

type Post struct {
	Row    int               `json:"row"`
	Text   *string           `json:"text"`
	Fields map[string]string `json:"fields,omitempty"`
}

type Dataset []Post

// TextOrEmpty returns the post text, or "" when the cell was absent.
func (p Post) TextOrEmpty() string {
	if p.Text == nil {
		return ""
	}
	return *p.Text
}
