package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/localboost/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/localboost/internal/cryptox"
	"github.com/dmitrijs2005/localboost/internal/dbx"
	"github.com/dmitrijs2005/localboost/internal/filex"
)

const (
	keyToken = "auth_token"
	keyNonce = "auth_token_nonce"
)

var sealingInfo = []byte("localboost auth token v1")

// deriveKey is swapped in tests.
var deriveKey = cryptox.DeriveKey

// SQLiteStore keeps the token AES-GCM sealed in the metadata table.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
	key  []byte
}

// NewSQLiteStore binds the store to db. deviceSecret is the input keying
// material for the sealing key and must stay stable across runs. The key is
// derived here, once; the store does not keep deviceSecret.
func NewSQLiteStore(db *sql.DB, deviceSecret []byte) (*SQLiteStore, error) {
	key, err := deriveKey(deviceSecret, sealingInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return &SQLiteStore{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		key:  key,
	}, nil
}

// OpenSQLiteStore loads the device secret from keyPath, creating it on first
// run, and returns a store over db.
func OpenSQLiteStore(db *sql.DB, keyPath string) (*SQLiteStore, error) {
	secret, err := filex.ReadOrCreateSecret(keyPath, func() ([]byte, error) {
		return cryptox.RandomBytes(cryptox.KeySize)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: device key: %w", ErrStorage, err)
	}
	defer cryptox.Wipe(secret)

	return NewSQLiteStore(db, secret)
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	ciphertext, err := s.repo.Get(ctx, keyToken)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if ciphertext == nil {
		return "", false, nil
	}

	nonce, err := s.repo.Get(ctx, keyNonce)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if nonce == nil {
		return "", false, fmt.Errorf("%w: sealed token is missing its nonce", ErrStorage)
	}

	plaintext, err := cryptox.Open(ciphertext, nonce, s.key)
	if err != nil {
		return "", false, fmt.Errorf("%w: open sealed token: %w", ErrStorage, err)
	}
	return string(plaintext), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	ciphertext, nonce, err := cryptox.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("%w: seal token: %w", ErrStorage, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyNonce, nonce); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, ciphertext)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keyToken, keyNonce)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
