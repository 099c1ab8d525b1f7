package core

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// StoreKind selects a Result Store implementation by name. Store engines are
// compiled in and register themselves; selection happens through configuration
// rather than runtime class lookup.
type StoreKind string

// StoreKindPostgres is the PostgreSQL-backed result store.
const StoreKindPostgres StoreKind = "postgres"

// StoreConfig carries the shared dependencies a store opener may need.
type StoreConfig struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// StoreOpener constructs a ResultStore from shared dependencies.
type StoreOpener func(cfg StoreConfig) (ResultStore, error)

var (
	storesMu sync.RWMutex
	stores   = make(map[StoreKind]StoreOpener)
)

// RegisterStore registers an opener for a store kind. Registering the same
// kind twice panics; store packages register once from init.
func RegisterStore(kind StoreKind, opener StoreOpener) {
	storesMu.Lock()
	defer storesMu.Unlock()

	if opener == nil {
		panic("RegisterStore: nil opener for kind " + string(kind))
	}
	if _, dup := stores[kind]; dup {
		panic("RegisterStore: duplicate registration for kind " + string(kind))
	}
	stores[kind] = opener
}

// OpenStore opens the store registered for kind.
//
//nolint:ireturn // the registry exists to hand back the port, not a concrete store.
func OpenStore(kind StoreKind, cfg StoreConfig) (ResultStore, error) {
	storesMu.RLock()
	opener, ok := stores[kind]
	storesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown result store kind %q (registered: %v)", kind, RegisteredStoreKinds())
	}
	return opener(cfg)
}

// RegisteredStoreKinds returns the registered kinds in sorted order.
func RegisteredStoreKinds() []StoreKind {
	storesMu.RLock()
	defer storesMu.RUnlock()

	kinds := make([]StoreKind, 0, len(stores))
	for k := range stores {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
