package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	AdsSlotKeyPrefix = "ads:%s"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 10 * time.Minute
	AdsSlotTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func AdsSlotKey(slot string) string {
	return fmt.Sprintf(AdsSlotKeyPrefix, slot)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateAdsSlot(ctx context.Context, slot string) {
	Invalidate(ctx, AdsSlotKey(slot))
}
