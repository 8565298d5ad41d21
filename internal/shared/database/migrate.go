package database

import (
	"inkwell/internal/categories"
	"inkwell/internal/comments"
	"inkwell/internal/posts"
	"inkwell/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&categories.Category{},
		&posts.Post{},
		&comments.Comment{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
