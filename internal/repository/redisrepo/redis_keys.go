package redisrepo

import "fmt"

const (
	FEED_KEY = "feed"
	POST_KEY = "post:%s" // <postID>
)

func FeedKey() string {
	return FEED_KEY
}

func PostKey(postID string) string {
	return fmt.Sprintf(POST_KEY, postID)
}
