package posts

import "time"

// post data in responses
type PostResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Tags        []string  `json:"tags"`
	ReadTimeMin int       `json:"read_time_min"`
	IsPublished bool      `json:"is_published"`
	IsFeatured  bool      `json:"is_featured"`
	IsArchived  bool      `json:"is_archived"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	CategoryID  string    `json:"category_id"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// paginated post list
type PaginatedPosts struct {
	Posts      []PostResponse `json:"posts"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
