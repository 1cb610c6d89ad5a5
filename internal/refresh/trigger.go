package refresh

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const lastUpdateKey = "booking:last_update"

// Trigger records the timestamp of the last booking mutation in Redis so the
// dashboard can poll for changes without hammering the database. A nil
// Trigger (no Redis configured) is a no-op.
type Trigger struct {
	rdb *redis.Client
}

func NewTrigger(addr, password string) *Trigger {
	if addr == "" {
		return nil
	}

	return &Trigger{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (t *Trigger) Touch(ctx context.Context) {
	if t == nil {
		return
	}

	if err := t.rdb.Set(ctx, lastUpdateKey, time.Now().Unix(), 0).Err(); err != nil {
		log.Println("refresh trigger error:", err)
	}
}

func (t *Trigger) Last(ctx context.Context) int64 {
	if t == nil {
		return 0
	}

	ts, err := t.rdb.Get(ctx, lastUpdateKey).Int64()
	if err != nil {
		if err != redis.Nil {
			log.Println("refresh trigger error:", err)
		}
		return 0
	}
	return ts
}
