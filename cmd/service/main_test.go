package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"demo/foodorders/internal/config"

	"github.com/stretchr/testify/require"
)

func testConfig(addr string) config.Config {
	return config.Config{
		HTTPAddr:        addr,
		StoreBackend:    config.BackendMemory,
		ServiceName:     "foodorders",
		ShutdownTimeout: time.Second,
		CORS:            config.CORS{AllowOrigin: "*", AllowMethods: "OPTIONS,POST,GET", MaxAge: 3600},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRun_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = run(context.Background(), testConfig(ln.Addr().String()), discardLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "http server")
}

func TestRun_StopsCleanlyOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(addr), discardLogger()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_StartupError(t *testing.T) {
	cfg := testConfig("127.0.0.1:0")
	cfg.StoreBackend = "sqlite"

	err := run(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "startup")
}
