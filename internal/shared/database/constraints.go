package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// Case-insensitive uniqueness for category names. The service pre-checks
	// for friendliness, but this index is what actually enforces it.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower
		ON categories (LOWER(name));
	`).Error
	if err != nil {
		return err
	}

	// Partial index so listing queries that exclude soft-deleted posts stay
	// cheap as the table grows.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_posts_live
		ON posts (created_at DESC)
		WHERE is_deleted = false;
	`).Error
	if err != nil {
		return err
	}

	// Comment listing is always scoped to a post.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_comments_post_id
		ON comments (post_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
