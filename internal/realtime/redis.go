package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
)

// AnalyticsChannel carries JSON-encoded analytics events between instances.
const AnalyticsChannel = "analytics:events"

func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	logging.SLog.Infof("redis client created (addr: %s)", addr)
	return rdb
}

// Publisher delivers a live-feed payload to every connected admin.
type Publisher interface {
	Publish(ctx context.Context, payload []byte)
}

// LocalPublisher broadcasts straight into this process's hub.
type LocalPublisher struct {
	Hub *Hub
}

func (p LocalPublisher) Publish(ctx context.Context, payload []byte) {
	p.Hub.Broadcast(payload)
}

// RedisPublisher fans out through a pub/sub channel so admins connected to
// any instance see the event. Each instance runs Forward to feed its hub.
type RedisPublisher struct {
	RDB *redis.Client
}

func (p RedisPublisher) Publish(ctx context.Context, payload []byte) {
	if err := p.RDB.Publish(ctx, AnalyticsChannel, payload).Err(); err != nil {
		logging.Log.Warn("publish analytics event", zap.Error(err))
	}
}

// Forward relays channel messages into hub until ctx is cancelled.
func Forward(ctx context.Context, rdb *redis.Client, hub *Hub) {
	sub := rdb.Subscribe(ctx, AnalyticsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			hub.Broadcast([]byte(msg.Payload))
		}
	}
}
