package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"demo/foodorders/internal/gen"
	"demo/foodorders/internal/model"
	"demo/foodorders/internal/telemetry"
)

func main() {
	logger := telemetry.NewLogger(os.Stderr, env("LOG_LEVEL", "info"))
	gen.SeedOnce()

	apiURL := strings.TrimRight(env("API_URL", "http://localhost:8082"), "/")
	glob := env("DATA_GLOB", "data/*.json")
	logger.Info("seed", "api", apiURL, "glob", glob)

	s := &seeder{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    apiURL + "/order",
		logger: logger,
	}
	ctx := context.Background()

	paths, err := filepath.Glob(glob)
	if err != nil {
		logger.Error("bad glob", "glob", glob, "error", err)
		os.Exit(1)
	}

	if len(paths) == 0 {
		n, err := intEnv("GEN_COUNT", 1)
		if err != nil {
			logger.Error("bad config", "error", err)
			os.Exit(1)
		}
		gap, err := intEnv("GEN_INTERVAL_MS", 0)
		if err != nil {
			logger.Error("bad config", "error", err)
			os.Exit(1)
		}
		sent := 0
		for i := 0; i < n; i++ {
			if err := s.send(ctx, gen.FakeOrder(), "generated"); err != nil {
				logger.Error("send", "error", err)
			} else {
				sent++
			}
			if gap > 0 {
				time.Sleep(time.Duration(gap) * time.Millisecond)
			}
		}
		logger.Info("done", "sent", sent, "generated", n)
		return
	}

	total := 0
	for _, p := range paths {
		n, err := s.sendFile(ctx, p)
		if err != nil {
			logger.Error("file", "path", p, "error", err)
		}
		total += n
	}
	logger.Info("done", "sent", total, "files", len(paths))
}

type seeder struct {
	client *http.Client
	url    string
	logger *slog.Logger
}

func (s *seeder) send(ctx context.Context, o model.Order, source string) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("order %s: status %d: %s", o.OrderID, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	s.logger.Info("sent", "order_id", o.OrderID, "item", o.Item, "src", source)
	return nil
}

// sendFile accepts a single order object or an array of them.
func (s *seeder) sendFile(ctx context.Context, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	src := filepath.Base(path)

	var one model.Order
	if err := json.Unmarshal(b, &one); err == nil && one.OrderID != "" {
		if err := s.send(ctx, one, src); err != nil {
			return 0, err
		}
		return 1, nil
	}
	var many []model.Order
	if err := json.Unmarshal(b, &many); err == nil && len(many) > 0 {
		sum := 0
		for _, o := range many {
			if err := s.send(ctx, o, src); err != nil {
				s.logger.Error("send", "error", err)
				continue
			}
			sum++
		}
		return sum, nil
	}
	return 0, fmt.Errorf("invalid JSON in %s: must be an order object or array of orders", path)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// intEnv reads a non-negative integer from k, falling back to def when unset.
func intEnv(k string, def int) (int, error) {
	s := os.Getenv(k)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", k, s)
	}
	return n, nil
}
