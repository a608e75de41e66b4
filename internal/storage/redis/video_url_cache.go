package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VideoURLCache keeps presigned playback URLs warm so remounts within the
// signing window reuse the same URL instead of re-signing.
type VideoURLCache struct {
	client *redis.Client
}

func NewVideoURLCache(client *redis.Client) *VideoURLCache {
	return &VideoURLCache{client: client}
}

func videoURLKey(lessonID uuid.UUID) string {
	return fmt.Sprintf("video_url:%s", lessonID)
}

func (c *VideoURLCache) GetVideoURL(ctx context.Context, lessonID uuid.UUID) (string, bool, error) {
	url, err := c.client.Get(ctx, videoURLKey(lessonID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return url, true, nil
}

func (c *VideoURLCache) SetVideoURL(ctx context.Context, lessonID uuid.UUID, url string, ttl time.Duration) error {
	return c.client.Set(ctx, videoURLKey(lessonID), url, ttl).Err()
}
