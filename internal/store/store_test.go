package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"projlist/internal/config"
	"projlist/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCase struct {
	name    string
	backend Backend
	// putRaw writes a value under key without going through the encoder.
	putRaw func(t *testing.T, key, raw string)
	// has reports whether key physically exists in the backend.
	has func(t *testing.T, key string) bool
}

func backends(t *testing.T) []backendCase {
	t.Helper()
	ctx := context.Background()

	fileDir := t.TempDir()
	fs := NewFileStore(fileDir)

	sq, err := OpenSQLite(ctx, SQLitePath(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	mr := miniredis.RunT(t)
	rs := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = rs.Close() })

	mem := NewMemStore()

	return []backendCase{
		{
			name:    "file",
			backend: fs,
			putRaw: func(t *testing.T, key, raw string) {
				require.NoError(t, fs.Ensure())
				require.NoError(t, os.WriteFile(filepath.Join(fileDir, key+".json"), []byte(raw), 0o644))
			},
			has: func(t *testing.T, key string) bool {
				_, err := os.Stat(filepath.Join(fileDir, key+".json"))
				return err == nil
			},
		},
		{
			name:    "sqlite",
			backend: sq,
			putRaw: func(t *testing.T, key, raw string) {
				_, err := sq.db.Exec(`INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, 0)`, key, raw)
				require.NoError(t, err)
			},
			has: func(t *testing.T, key string) bool {
				var n int
				require.NoError(t, sq.db.QueryRow(`SELECT COUNT(*) FROM kv WHERE k = ?`, key).Scan(&n))
				return n > 0
			},
		},
		{
			name:    "redis",
			backend: rs,
			putRaw: func(t *testing.T, key, raw string) {
				require.NoError(t, mr.Set(key, raw))
			},
			has: func(t *testing.T, key string) bool {
				return mr.Exists(key)
			},
		},
		{
			name:    "memory",
			backend: mem,
			putRaw: func(t *testing.T, key, raw string) {
				mem.PutRaw(key, []byte(raw))
			},
			has: func(t *testing.T, key string) bool {
				return mem.Has(key)
			},
		},
	}
}

func sampleProjects() []model.Project {
	return []model.Project{
		{
			No:          "1",
			Title:       "Analytical Engine",
			Assignee:    "Charles",
			Condition:   "green",
			Start:       "1837",
			LastUpdate:  "1843",
			Report:      "Notes G",
			NextReport:  "tbd",
			Notes:       "first program",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Description: "lead",
		},
		{FirstName: "Grace", LastName: "Hopper", Description: "compilers\nand *COBOL*"},
	}
}

func TestBackends_RoundTripPreservesOrderAndFields(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			want := sampleProjects()
			require.NoError(t, bc.backend.Set(ctx, "yew.crm.Projects", want))

			got, err := bc.backend.Get(ctx, "yew.crm.Projects")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestBackends_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			require.NoError(t, bc.backend.Set(ctx, "k", sampleProjects()))
			one := []model.Project{{FirstName: "Only", LastName: "One"}}
			require.NoError(t, bc.backend.Set(ctx, "k", one))

			got, err := bc.backend.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, one, got)
		})
	}
}

func TestBackends_MissingKeyIsNotFound(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			_, err := bc.backend.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackends_DeleteRemovesKey(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			require.NoError(t, bc.backend.Set(ctx, "k", sampleProjects()))
			require.True(t, bc.has(t, "k"))

			require.NoError(t, bc.backend.Delete(ctx, "k"))
			assert.False(t, bc.has(t, "k"))

			_, err := bc.backend.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting again is fine.
			require.NoError(t, bc.backend.Delete(ctx, "k"))
		})
	}
}

func TestBackends_CorruptValue(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			bc.putRaw(t, "k", "{not json")
			_, err := bc.backend.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestBackends_EmptyCollectionIsPresent(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			require.NoError(t, bc.backend.Set(ctx, "k", nil))
			got, err := bc.backend.Get(ctx, "k")
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)
		})
	}
}

func TestDecode_UsesStoredFieldNamesAndDefaultsMissing(t *testing.T) {
	raw := `[{"no":"7","ptitle":"T","pma":"M","first_name":"Ada","last_name":"Lovelace","description":"lead"}]`
	got, err := decode("k", []byte(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Project{
		No:          "7",
		Title:       "T",
		Assignee:    "M",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Description: "lead",
	}, got[0])
}

func TestDecode_NullIsEmpty(t *testing.T) {
	got, err := decode("k", []byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	err := fs.Set(context.Background(), "../escape", sampleProjects())
	require.Error(t, err)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, config.Storage{Backend: config.BackendFile, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, b)
	require.NoError(t, b.Close())

	b, err = Open(ctx, config.Storage{Backend: config.BackendSQLite, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, b)
	assert.Equal(t, "sqlite:"+filepath.Join(dir, "projlist.sqlite"), b.String())
	require.NoError(t, b.Close())

	b, err = Open(ctx, config.Storage{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemStore{}, b)

	mr := miniredis.RunT(t)
	b, err = Open(ctx, config.Storage{Backend: config.BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, config.Storage{Backend: "etcd"})
	require.Error(t, err)
}

func TestOpenRedis_UnreachableFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, 0)
	require.Error(t, err)
}
