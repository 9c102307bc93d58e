package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"lms_backend/internal/markdown"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ContentService 拉取文本资料并渲染为 HTML，渲染结果缓存在 Redis 中
type ContentService struct {
	Loader   *markdown.Loader
	Redis    *redis.Client
	CacheTTL time.Duration

	inflight singleflight.Group
}

func NewContentService(loader *markdown.Loader, rdb *redis.Client, cacheTTL time.Duration) *ContentService {
	return &ContentService{Loader: loader, Redis: rdb, CacheTTL: cacheTTL}
}

func markdownCacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "markdown:" + hex.EncodeToString(sum[:])
}

func validateContentURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return util.ErrInvalidContentURL
	}
	return nil
}

// RenderURL 返回渲染后的 HTML；失败不写缓存，错误为 markdown.ContentFetchError
func (s *ContentService) RenderURL(ctx context.Context, rawURL string) (string, error) {
	if err := validateContentURL(rawURL); err != nil {
		return "", err
	}

	key := markdownCacheKey(rawURL)
	if s.Redis != nil && s.CacheTTL > 0 {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("读取渲染缓存失败", zap.String("url", rawURL), zap.Error(err))
		}
	}

	// 同一 URL 的并发请求共享一次拉取，不受发起者取消影响
	workCtx := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(key, func() (interface{}, error) {
		text, err := s.Loader.Load(workCtx, rawURL)
		if err != nil {
			return "", err
		}
		return markdown.Render(text), nil
	})
	if err != nil {
		return "", err
	}

	html := v.(string)
	if s.Redis != nil && s.CacheTTL > 0 {
		if err := s.Redis.Set(ctx, key, html, s.CacheTTL).Err(); err != nil {
			logger.Log.Warn("写入渲染缓存失败", zap.String("url", rawURL), zap.Error(err))
		}
	}
	return html, nil
}

// Invalidate 资料内容更新后清除缓存
func (s *ContentService) Invalidate(ctx context.Context, rawURL string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, markdownCacheKey(rawURL)).Err(); err != nil {
		logger.Log.Warn("清除渲染缓存失败", zap.String("url", rawURL), zap.Error(err))
	}
}
