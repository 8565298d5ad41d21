package constants

// Redis key layout for cached post reads. Everything lives under the
// "inkwell:" namespace so pattern invalidation cannot touch foreign keys.
const (
	KEY_POST_DETAIL    = "inkwell:posts:detail:"  // + post id
	KEY_POSTS_FEATURED = "inkwell:posts:featured" // featured post list

	PATTERN_INVALIDATE_POSTS_ALL = "inkwell:posts:*"
)
