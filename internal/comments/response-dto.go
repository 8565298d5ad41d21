package comments

import "time"

// comment data in responses
type CommentResponse struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
