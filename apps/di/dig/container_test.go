package dig_container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/Allen-Davis-M/Attendify/apps/api/echo"
	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func testConfig() *core.Config {
	return &core.Config{
		Env:     "TEST",
		Debug:   true,
		AppName: "Attendify",
		Storage: core.StorageConfig{Engine: core.EngineMemory, Key: core.DefaultStorageKey},
		Server:  core.ServerConfig{Host: "127.0.0.1:0", ShutdownTimeout: time.Second},
	}
}

func TestNew(t *testing.T) {
	c := New(testConfig)

	err := c.Invoke(func(svc *tracker.Service, store core.KVStore, server *echoapi.Server) {
		assert.Equal(t, tracker.StarterData(), svc.Data())

		// the starter data was written on first load
		raw, err := store.Get(context.Background(), core.DefaultStorageKey)
		require.NoError(t, err)
		assert.Contains(t, raw, `"name":"Mathematics"`)

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/settings", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}
