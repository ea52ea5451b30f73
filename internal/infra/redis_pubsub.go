package infra

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"schooladmin.com/internal/constants"
)

// NoticeMessage 通过 Redis 频道分发的通知消息
type NoticeMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NoticeChan buffers notice messages between the Redis subscriber and the
// dispatcher.
var NoticeChan = make(chan NoticeMessage, 256)

// PublishNotice 将通知消息发布到 Redis 频道，多实例部署时各实例都会收到。
func PublishNotice(ctx context.Context, rdb *redis.Client, msg NoticeMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, constants.RedisChannelNotices, data).Err()
}

// StartNoticeSubscriber starts a goroutine that forwards notice messages
// from the Redis channel into NoticeChan.
func StartNoticeSubscriber(rdb *redis.Client, ctx context.Context) {
	pubsub := rdb.Subscribe(ctx, constants.RedisChannelNotices)

	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Fatalf("Failed to subscribe to notice channel: %v", err)
	}

	ch := pubsub.Channel()

	go func() {
		defer pubsub.Close()
		log.Println("Started Notice Subscriber Loop")
		for msg := range ch {
			var notice NoticeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
				log.Printf("Notice subscriber: bad payload: %v", err)
				continue
			}

			select {
			case NoticeChan <- notice:
			default:
				log.Println("Warning: NoticeChan is full, dropping message")
			}
		}
	}()
}
