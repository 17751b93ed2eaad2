package redisrepo

import "fmt"

const (
	POSTS_LIST_VERSION_KEY = "posts:list:version"
	POSTS_LIST_KEY         = "posts:list:%d"
)

// PostsListKey is the cache key of the post list built at the given version.
// Writers bump the version, so lists filled from an older read are never served.
func PostsListKey(version int64) string {
	return fmt.Sprintf(POSTS_LIST_KEY, version)
}

func PostsListVersionKey() string {
	return POSTS_LIST_VERSION_KEY
}
