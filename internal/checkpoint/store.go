package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/ChizhovVadim/CounterTexel/pkg/common"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

const (
	keyLatest        = "latest"
	keyEpochTemplate = "epoch/%06d"
	keyEpochPrefix   = "epoch/"
)

var (
	ErrNotFound = errors.New("checkpoint not found")
	ErrLayout   = errors.New("checkpoint does not match feature layout")
)

// Checkpoint is the tuner state after a finished epoch.
type Checkpoint struct {
	Epoch      int          `json:"epoch"`
	K          float64      `json:"k"`
	Error      float64      `json:"error"`
	Weights    eval.Weights `json:"weights"`
	Directions [][2]int     `json:"directions"`
}

// Store keeps checkpoints in a badger database.
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that is lost on Close.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores cp as the latest checkpoint and keeps it in the epoch history.
func (s *Store) Save(cp *Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyLatest), data); err != nil {
			return err
		}
		return txn.Set([]byte(fmt.Sprintf(keyEpochTemplate, cp.Epoch)), data)
	})
}

// Load returns the latest checkpoint or ErrNotFound.
func (s *Store) Load() (*Checkpoint, error) {
	var cp = &Checkpoint{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLatest))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, cp)
		})
	})
	if err != nil {
		return nil, err
	}
	if err := cp.validate(); err != nil {
		return nil, err
	}
	return cp, nil
}

// Reset removes the latest checkpoint and the epoch history.
func (s *Store) Reset() error {
	return s.db.DropPrefix([]byte(keyLatest), []byte(keyEpochPrefix))
}

// History returns the error after every saved epoch in epoch order.
func (s *Store) History() ([]float64, error) {
	var result []float64
	err := s.db.View(func(txn *badger.Txn) error {
		var it = txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		var prefix = []byte(keyEpochPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var cp Checkpoint
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &cp)
			})
			if err != nil {
				return err
			}
			result = append(result, cp.Error)
		}
		return nil
	})
	return result, err
}

func (cp *Checkpoint) validate() error {
	if len(cp.Weights) != eval.FeatureSize || len(cp.Directions) != eval.FeatureSize {
		return fmt.Errorf("%w: %v weights, %v directions, %v features",
			ErrLayout, len(cp.Weights), len(cp.Directions), eval.FeatureSize)
	}
	if cp.K <= 0 {
		return fmt.Errorf("%w: k=%v", ErrLayout, cp.K)
	}
	for i := range cp.Directions {
		for part, d := range cp.Directions[i] {
			if d == 0 {
				d = 1
			}
			cp.Directions[i][part] = common.Limit(d, -1, 1)
		}
	}
	return nil
}
