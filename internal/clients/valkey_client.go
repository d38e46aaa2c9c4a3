package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const VALKEY_TRENDING_KEY = "news:trending_keywords"

// ValkeyClient caches derived read-heavy results, currently the trending
// keyword list. The gateway itself stays cache-free; this sits in the HTTP
// layer.
type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

func valkeyOptions() valkey.ClientOption {
	opts := valkey.ClientOption{
		InitAddress: []string{
			os.Getenv("VALKEY_INIT_ADDRESS"),
		},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	return opts
}

func InitValkey() (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		client, err := valkey.NewClient(valkeyOptions())
		if err != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			client.Close()
			initErr = fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})

	if initErr != nil {
		return nil, initErr
	}
	return valkeyInstance, nil
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()

	client, err := valkey.NewClient(valkeyOptions())
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err))
	}

	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
	vc.Client = client
}

// CacheTrendingKeywords stores the computed trending list with a TTL.
func (vc *ValkeyClient) CacheTrendingKeywords(ctx context.Context, keywords []string, ttl time.Duration) error {
	payload, err := json.Marshal(keywords)
	if err != nil {
		return err
	}

	cmd := vc.Client.B().Set().Key(VALKEY_TRENDING_KEY).Value(string(payload)).
		Ex(ttl).Build()
	res := vc.DoWithRetry(ctx, cmd, 3)
	if err := res.Error(); err != nil {
		return err
	}

	slog.Info("[ValkeyClient] Cached trending keywords",
		slog.Int("count", len(keywords)),
		slog.Duration("ttl", ttl))
	return nil
}

// GetTrendingKeywords returns the cached trending list, reporting a miss for
// absent keys and any read or decode failure.
func (vc *ValkeyClient) GetTrendingKeywords(ctx context.Context) ([]string, bool) {
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(VALKEY_TRENDING_KEY).Build(), 3)

	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return nil, false
	}

	payload, err := res.ToString()
	if err != nil {
		return nil, false
	}

	var keywords []string
	if err := json.Unmarshal([]byte(payload), &keywords); err != nil {
		slog.Warn("[ValkeyClient] Failed to decode cached trending keywords",
			slog.String("error", err.Error()))
		return nil, false
	}

	return keywords, true
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
