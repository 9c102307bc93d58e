package configwatcher

import (
	"context"
	"lms_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	viper.Reset()
	debounce = 50 * time.Millisecond

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: debug\nstorage:\n  type: minio\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	go func() {
		_ = WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 就绪后再写入
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: release\njwt:\n  secret: a-very-long-secret-value-for-release-mode\nstorage:\n  type: minio\n"), 0o644))

	select {
	case cfg := <-reloaded:
		require.Equal(t, "release", cfg.Server.Mode)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
