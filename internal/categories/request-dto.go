package categories

// create category request payload
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=3,max=20"`
}

// update category request payload
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=3,max=20"`
}
