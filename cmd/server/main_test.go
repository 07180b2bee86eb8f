package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func withSeams(t *testing.T) {
	t.Helper()
	origDotenv := loadDotenv
	origOpenDB := openDB
	origInitRedis := initRedis
	origRunServer := runServer
	t.Cleanup(func() {
		loadDotenv = origDotenv
		openDB = origOpenDB
		initRedis = origInitRedis
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return errors.New("no .env") }
	initRedis = func(url, password string) error { return nil }
	runServer = func(srv *http.Server) error { return nil }
}

func TestRunMainProcess_RedisInitFails(t *testing.T) {
	withSeams(t)
	initRedis = func(url, password string) error { return errors.New("dial refused") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_DatabaseOpenFails(t *testing.T) {
	withSeams(t)
	openDB = func(dsn string) (*gorm.DB, error) { return nil, errors.New("bad dsn") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestRunMainProcess_StartsWithSQLite(t *testing.T) {
	withSeams(t)
	dbCount := 0
	openDB = func(dsn string) (*gorm.DB, error) {
		dbCount++
		return gorm.Open(sqlite.Open(fmt.Sprintf("file:server_main_%d?mode=memory&cache=shared", dbCount)), &gorm.Config{})
	}

	var started bool
	runServer = func(srv *http.Server) error {
		started = true
		r, ok := srv.Handler.(*gin.Engine)
		require.True(t, ok)
		// Migrations ran before the server starts, so every wired
		// route must be present.
		routes := make(map[string]bool)
		for _, route := range r.Routes() {
			routes[route.Method+" "+route.Path] = true
		}
		assert.True(t, routes["GET /api/v1/offers"])
		assert.True(t, routes["GET /health"])
		return nil
	}

	require.NoError(t, runMainProcess())
	assert.True(t, started)
}

func TestRunServer_ShutsDownOnSignal(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	errCh := make(chan error, 1)
	go func() { errCh <- runServer(srv) }()

	// Give the listener and the signal handler time to come up.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after SIGTERM")
	}
}
