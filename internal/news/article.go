package news

import (
	"errors"
	"time"
)

var (
	ErrArticleNotFound = errors.New("news article not found")
	ErrMissingFields   = errors.New("missing fields")
)

type Article struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	CategoryType string    `json:"categoryType"`
	Slug         string    `json:"slug"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
}

// hasContent reports whether every editable field is set
func (a *Article) hasContent() bool {
	for _, field := range []string{
		a.Title,
		a.Date,
		a.Description,
		a.Category,
		a.CategoryType,
		a.Slug,
		a.Image,
	} {
		if field == "" {
			return false
		}
	}
	return true
}
