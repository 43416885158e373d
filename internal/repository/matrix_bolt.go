package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketRows = []byte("rows")
	bucketMeta = []byte("meta")
	keyItems   = []byte("items")
)

// BoltMatrixStore es el backend embebido: una fila por key dentro de un
// bucket bbolt, celdas serializadas como JSON. Cada operación corre en
// una transacción, así que el read-modify-write por usuario es atómico
// sin infraestructura externa.
type BoltMatrixStore struct {
	db    *bolt.DB
	items int
}

func NewBoltMatrixStore(path string, items int) (*BoltMatrixStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	database, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("abriendo bolt %s: %w", path, err)
	}

	err = database.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketRows); err != nil {
			return err
		}

		if raw := meta.Get(keyItems); raw != nil {
			persisted, err := strconv.Atoi(string(raw))
			if err != nil {
				return fmt.Errorf("%w: meta items ilegible %q", ErrMatrixInconsistent, raw)
			}
			if persisted != items {
				return fmt.Errorf("%w: %d columnas persistidas, catálogo de %d",
					ErrMatrixInconsistent, persisted, items)
			}
			return nil
		}
		return meta.Put(keyItems, []byte(strconv.Itoa(items)))
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	return &BoltMatrixStore{db: database, items: items}, nil
}

func (s *BoltMatrixStore) Close() error { return s.db.Close() }

func (s *BoltMatrixStore) getCells(tx *bolt.Tx, userID string) ([]int, bool, error) {
	raw := tx.Bucket(bucketRows).Get([]byte(userID))
	if raw == nil {
		return nil, false, nil
	}
	var cells []int
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, false, err
	}
	if len(cells) != s.items {
		return nil, false, fmt.Errorf("%w: fila %q con %d celdas",
			ErrMatrixInconsistent, userID, len(cells))
	}
	return cells, true, nil
}

func (s *BoltMatrixStore) putCells(tx *bolt.Tx, userID string, cells []int) error {
	raw, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketRows).Put([]byte(userID), raw)
}

func (s *BoltMatrixStore) GetRow(_ context.Context, userID string) (models.UserRow, bool, error) {
	var row models.UserRow
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		cells, ok, err := s.getCells(tx, userID)
		if err != nil || !ok {
			return err
		}
		row = models.UserRow{UserID: userID, Cells: cells}
		found = true
		return nil
	})
	return row, found, err
}

func (s *BoltMatrixStore) UpsertLikes(_ context.Context, userID string, itemIDs []int) error {
	for _, id := range itemIDs {
		if err := validCell(s.items, id, 1); err != nil {
			return err
		}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		cells, found, err := s.getCells(tx, userID)
		if err != nil {
			return err
		}
		if !found {
			cells = make([]int, s.items)
		}
		for _, id := range itemIDs {
			cells[id] = 1
		}
		return s.putCells(tx, userID, cells)
	})
}

func (s *BoltMatrixStore) SetCell(_ context.Context, userID string, itemID, value int) error {
	if err := validCell(s.items, itemID, value); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		cells, found, err := s.getCells(tx, userID)
		if err != nil || !found {
			// usuario desconocido: no-op
			return err
		}
		cells[itemID] = value
		return s.putCells(tx, userID, cells)
	})
}

func (s *BoltMatrixStore) RowCount(_ context.Context) (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketRows).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltMatrixStore) LikedItems(ctx context.Context, userID string) ([]int, error) {
	row, found, err := s.GetRow(ctx, userID)
	if err != nil || !found {
		return nil, err
	}
	return row.LikedItems(), nil
}

func (s *BoltMatrixStore) Rows(_ context.Context) ([]models.UserRow, error) {
	var out []models.UserRow
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRows).ForEach(func(k, v []byte) error {
			var cells []int
			if err := json.Unmarshal(v, &cells); err != nil {
				return err
			}
			if len(cells) != s.items {
				return fmt.Errorf("%w: fila %q con %d celdas",
					ErrMatrixInconsistent, k, len(cells))
			}
			out = append(out, models.UserRow{UserID: string(k), Cells: cells})
			return nil
		})
	})
	return out, err
}
