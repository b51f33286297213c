package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"osm-linker/core/config"
	"osm-linker/core/database"
	"osm-linker/core/lock"
	"osm-linker/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"link", "types", "check", "start"} {
		assert.True(t, names[want], want)
	}

	for _, sub := range []string{"osm", "addresses", "all"} {
		found, _, err := RootCmd.Find([]string{"link", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}

	for _, flag := range []string{"type", "dry-run", "archive", "json"} {
		assert.NotNil(t, linkCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestTypesCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	typesCmd.SetOut(&out)
	typesJSON = true
	t.Cleanup(func() {
		typesJSON = false
		typesCmd.SetOut(nil)
	})

	require.NoError(t, typesCmd.RunE(typesCmd, nil))

	var types []reconcile.FeatureType
	require.NoError(t, json.Unmarshal(out.Bytes(), &types))
	require.NotEmpty(t, types)
	assert.Equal(t, "entrance", types[0].Name)
}

func TestTypesCommand_Table(t *testing.T) {
	var out bytes.Buffer
	typesCmd.SetOut(&out)
	t.Cleanup(func() { typesCmd.SetOut(nil) })

	require.NoError(t, typesCmd.RunE(typesCmd, nil))
	assert.Contains(t, out.String(), "olmap_entrance")
	assert.Contains(t, out.String(), "unloading_place")
}

func TestNewLinkingService(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database = database.Config{Driver: database.DriverSQLite, Name: ":memory:"}
	cfg.Linking = reconcile.DefaultConfig()
	cfg.Overpass.CacheTTLSeconds = 60

	db, err := database.Connect(cfg.Database)
	require.NoError(t, err)

	svc, closeLock, err := newLinkingService(context.Background(), cfg, zap.NewNop(), db, false)
	require.NoError(t, err)
	defer closeLock()

	assert.Len(t, svc.Types(), 8)
}

func TestNewLinkingService_ArchiveNeedsStorage(t *testing.T) {
	cfg := &config.Config{}
	_, _, err := newLinkingService(context.Background(), cfg, zap.NewNop(), nil, true)
	assert.Error(t, err)
}

func TestNewLinkingService_LockUnavailable(t *testing.T) {
	cfg := &config.Config{Lock: lock.Config{Addr: "127.0.0.1:1", TTLSeconds: 1}}
	_, _, err := newLinkingService(context.Background(), cfg, zap.NewNop(), nil, false)
	assert.Error(t, err)
}

func TestPrintRunReport(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	report := &reconcile.RunReport{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Types: []reconcile.TypeResult{
			{Type: "entrance", Kind: reconcile.KindOSM, Linked: 2},
			{Type: "gate", Kind: reconcile.KindOSM, Error: "overpass query for barrier failed"},
		},
		Linked: 2,
		Failed: 1,
	}
	assert.NotPanics(t, func() { printRunReport(zap.NewNop(), report) })
}
