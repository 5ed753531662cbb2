package postservice

import (
	"database/sql"
	"time"

	"github.com/deverhart/folio/internal/common"
)

type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	// Content is stored in Markdown format.
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Author     string    `json:"author"`
	CoverImage string    `json:"coverImage"`
	ReadTime   string    `json:"readTime"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DefaultCoverImage is applied when a post is saved without a cover image.
const DefaultCoverImage = "https://placehold.co/600x400"

// Categories is the fixed set of post category labels.
var Categories = []string{
	"Technology",
	"Design",
	"Development",
	"Business",
	"Tutorial",
	"News",
	"Other",
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m *PostModel
	c *common.Cache
}
