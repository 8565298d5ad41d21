package comments

// create comment request payload
type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=1000"`
	PostID  string `json:"blogPostId" binding:"required,uuid"`
}

// update comment request payload
type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=1000"`
}
