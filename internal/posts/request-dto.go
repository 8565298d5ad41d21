package posts

// create post request payload
type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,min=10,max=100"`
	Content     string   `json:"content" binding:"required,min=1"`
	Excerpt     string   `json:"excerpt" binding:"max=300"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	CategoryID  string   `json:"categoryId" binding:"required,uuid"`
	IsPublished bool     `json:"isPublished"`
	IsFeatured  bool     `json:"isFeatured"`
}

// update post request payload; nil fields are left untouched
type UpdatePostRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=10,max=100"`
	Content     *string  `json:"content" binding:"omitempty,min=1"`
	Excerpt     *string  `json:"excerpt" binding:"omitempty,max=300"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	CategoryID  *string  `json:"categoryId" binding:"omitempty,uuid"`
	IsPublished *bool    `json:"isPublished"`
	IsFeatured  *bool    `json:"isFeatured"`
}

// list query parameters
type PostListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,uuid"`
	Author   string `form:"author" binding:"omitempty,uuid"`
	Tag      string `form:"tag"`

	// Set by the controller from caller identity, never bound from the query
	// string: anonymous callers only see published, unarchived posts.
	PublishedOnly bool `form:"-"`
}
