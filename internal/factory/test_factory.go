package factory

import (
	"github.com/mcoot/playerbase/internal/storage/memory"
	"github.com/mcoot/playerbase/internal/testutil"
)

// TestApp extends App with direct access to its in-memory store
type TestApp struct {
	*App

	Memory *memory.Storage
}

// NewTestApp creates an App backed by a fresh in-memory store
func NewTestApp() *TestApp {
	store := memory.New()
	app := newWithStorage(store, testutil.NopLogger())
	app.StorageType = StorageTypeMemory

	return &TestApp{
		App:    app,
		Memory: store,
	}
}
