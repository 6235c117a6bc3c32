package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/devghori1264/aerophoenix/osplugin/internal/models"
	badger "github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// maxTxnAttempts bounds retries of a transaction that lost a conflict.
const maxTxnAttempts = 5

// Store persists instance records. Every method is a single atomic unit of work.
type Store interface {
	GetInstance(ctx context.Context, id string) (*models.Instance, error)
	// CreateInstance fails with ErrAlreadyExists if the id is taken.
	CreateInstance(ctx context.Context, m *models.Instance) error
	// UpdateInstance reads the record, applies fn and writes it back in one
	// transaction. An error from fn aborts the write and is returned as is.
	UpdateInstance(ctx context.Context, id string, fn func(m *models.Instance) error) (*models.Instance, error)
	// DeleteInstance removes the record. A nil guard deletes unconditionally
	// and a missing record is not an error; otherwise the guard runs against
	// the current record inside the transaction and may veto the delete.
	DeleteInstance(ctx context.Context, id string, guard func(m *models.Instance) error) error
	ListInstances(ctx context.Context) ([]*models.Instance, error)
	Close() error
}

// BadgerStore implements Store with Badger DB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(path string) (Store, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil                         // badger logs are noise next to ours
	opts = opts.WithValueLogFileSize(1 << 20) // smaller value log for local dev
	return open(opts)
}

// NewInMemoryBadgerStore opens a store that lives only as long as the process.
func NewInMemoryBadgerStore() (Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

const instancePrefix = "instance:"

func instanceKey(id string) []byte {
	return []byte(instancePrefix + id)
}

func (s *BadgerStore) GetInstance(ctx context.Context, id string) (*models.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *models.Instance
	err := s.db.View(func(txn *badger.Txn) error {
		m, err := readInstance(txn, id)
		out = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) CreateInstance(ctx context.Context, m *models.Instance) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(instanceKey(m.InstanceID))
		switch {
		case err == nil:
			return ErrAlreadyExists
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		now := time.Now().UTC()
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
		return writeInstance(txn, m)
	})
}

func (s *BadgerStore) UpdateInstance(ctx context.Context, id string, fn func(m *models.Instance) error) (*models.Instance, error) {
	var out *models.Instance
	err := s.update(ctx, func(txn *badger.Txn) error {
		m, err := readInstance(txn, id)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		m.InstanceID = id
		m.UpdatedAt = time.Now().UTC()
		out = m
		return writeInstance(txn, m)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) DeleteInstance(ctx context.Context, id string, guard func(m *models.Instance) error) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		m, err := readInstance(txn, id)
		if errors.Is(err, ErrNotFound) && guard == nil {
			return nil
		}
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(m); err != nil {
				return err
			}
		}
		return txn.Delete(instanceKey(id))
	})
}

func (s *BadgerStore) ListInstances(ctx context.Context) ([]*models.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*models.Instance
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(instancePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var m models.Instance
			if err := item.Value(func(v []byte) error {
				return json.Unmarshal(v, &m)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", strings.TrimPrefix(string(item.Key()), instancePrefix), err)
			}
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// update runs fn in a read-write transaction, retrying when badger reports
// that a concurrent transaction touched the same keys.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func readInstance(txn *badger.Txn, id string) (*models.Instance, error) {
	item, err := txn.Get(instanceKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var m models.Instance
	if err := item.Value(func(v []byte) error {
		return json.Unmarshal(v, &m)
	}); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &m, nil
}

func writeInstance(txn *badger.Txn, m *models.Instance) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return txn.Set(instanceKey(m.InstanceID), data)
}
