// Package store implements key-value backends for the project collection.
//
// Every backend stores the whole collection as one JSON document under a single
// key. Writes overwrite; there is no partial update.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"projlist/internal/config"
	"projlist/internal/model"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under the key.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned by Get when the stored value does not decode.
	ErrCorrupt = errors.New("corrupt value")
)

// Backend is a storage backend as returned by Open.
type Backend interface {
	Get(ctx context.Context, key string) ([]model.Project, error)
	Set(ctx context.Context, key string, projects []model.Project) error
	Delete(ctx context.Context, key string) error
	io.Closer
	fmt.Stringer
}

func encode(projects []model.Project) ([]byte, error) {
	if projects == nil {
		projects = []model.Project{}
	}
	return json.Marshal(projects)
}

func decode(key string, b []byte) ([]model.Project, error) {
	var projects []model.Project
	if err := json.Unmarshal(b, &projects); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return OpenSQLite(ctx, SQLitePath(cfg.Dir))
	case config.BackendFile:
		return NewFileStore(cfg.Dir), nil
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	case config.BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
