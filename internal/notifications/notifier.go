// Package notifications publishes activity facts for feed and notification
// consumers. Every state-changing domain operation emits one timestamped
// event; delivery is fire-and-forget over Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event names published by the domain services.
const (
	EventReactionApplied   = "reaction_applied"
	EventCommentCreated    = "comment_created"
	EventReportCreated     = "report_created"
	EventReportTransition  = "report_transitioned"
	EventPostCreated       = "post_created"
	ActivityChannelPattern = "activity:*"
)

// Notifier publishes activity facts into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishActivity publishes a timestamped activity fact. Fields are merged
// into the payload alongside "event" and "at". Publishing is best-effort;
// a nil Redis client silently drops events.
func (n *Notifier) PublishActivity(ctx context.Context, event string, fields map[string]interface{}) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	payload := map[string]interface{}{
		"event": event,
		"at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		payload[k] = v
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal activity payload: %w", err)
	}

	channel := fmt.Sprintf("activity:%s", event)
	return n.rdb.Publish(ctx, channel, string(b)).Err()
}

// StartActivitySubscriber subscribes to all activity channels and calls
// onMessage for each incoming fact. Intended for feed-builder processes.
func (n *Notifier) StartActivitySubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, ActivityChannelPattern)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in activity subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
