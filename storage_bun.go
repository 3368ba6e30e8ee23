package authclient

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// sessionRecord is the persisted key-value row
type sessionRecord struct {
	bun.BaseModel `bun:"table:auth_session,alias:ses"`
	Key           string `bun:"key,pk" json:"key"`
	Value         string `bun:"value,notnull" json:"value"`
}

// BunStorage persists session entries in a SQL database through bun.
// Pointed at a SQLite file it gives CLI and desktop embeddings a durable
// session across restarts.
type BunStorage struct {
	db *bun.DB
}

func NewBunStorage(db *bun.DB) *BunStorage {
	return &BunStorage{db: db}
}

// OpenSQLiteStorage opens (or creates) a SQLite-backed BunStorage at path.
// Use ":memory:" for an ephemeral database.
func OpenSQLiteStorage(ctx context.Context, path string) (*BunStorage, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to open sqlite database")
	}
	storage := NewBunStorage(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := storage.Init(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// Init creates the backing table if it does not exist.
func (s *BunStorage) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*sessionRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to create session table")
	}
	return nil
}

// Close releases the underlying database handle.
func (s *BunStorage) Close() error {
	return s.db.Close()
}

func (s *BunStorage) Get(ctx context.Context, key string) (string, error) {
	rec := new(sessionRecord)
	err := s.db.NewSelect().
		Model(rec).
		Where("?TableAlias.key = ?", key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "session select failed")
	}
	return rec.Value, nil
}

func (s *BunStorage) Set(ctx context.Context, key, value string) error {
	rec := &sessionRecord{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "session upsert failed")
	}
	return nil
}

func (s *BunStorage) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*sessionRecord)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "session delete failed")
	}
	return nil
}
