package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lms_backend/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	NotifyError   = "error"
	NotifyWarning = "warning"
	NotifyInfo    = "info"

	notificationTTL      = 10 * time.Minute
	maxNotificationsUser = 20
)

// Notification 发给前端的一次性提示消息（toast）
type Notification struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(ctx context.Context, userID uint, level, message string)
}

// LogNotifier 只写日志，Redis 不可用或测试时使用
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, userID uint, level, message string) {
	logger.Log.Info("user notification",
		zap.Uint("userID", userID),
		zap.String("level", level),
		zap.String("message", message))
}

// RedisNotifier 把通知压入用户的 Redis 列表，由 GET /api/notifications 取走
type RedisNotifier struct {
	Redis *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{Redis: rdb}
}

func notificationKey(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

func (n *RedisNotifier) Notify(ctx context.Context, userID uint, level, message string) {
	LogNotifier{}.Notify(ctx, userID, level, message)

	payload, err := json.Marshal(Notification{Level: level, Message: message, CreatedAt: time.Now()})
	if err != nil {
		return
	}

	key := notificationKey(userID)
	pipe := n.Redis.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxNotificationsUser-1)
	pipe.Expire(ctx, key, notificationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Error("Redis pipeline error", zap.Error(err))
	}
}

// Drain 取出并清空用户的通知，按时间先后返回
func (n *RedisNotifier) Drain(ctx context.Context, userID uint) ([]Notification, error) {
	key := notificationKey(userID)

	var lrange *redis.StringSliceCmd
	_, err := n.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw := lrange.Val()
	notifications := make([]Notification, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var item Notification
		if err := json.Unmarshal([]byte(raw[i]), &item); err != nil {
			continue
		}
		notifications = append(notifications, item)
	}
	return notifications, nil
}
