package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// CSVMatrixStore persiste la matriz como tabla plana: columna user_id y
// una columna por id de película. Es el formato original.
//
// Cada operación carga el archivo completo, lo muta y lo reescribe. El
// mutex serializa esas operaciones dentro del proceso; entre procesos
// sigue existiendo la carrera clásica de "último write pisa al primero".
// Para evitarla usar el backend mongo o bolt.
type CSVMatrixStore struct {
	path  string
	items int
	mu    sync.Mutex
}

func NewCSVMatrixStore(path string, items int) (*CSVMatrixStore, error) {
	s := &CSVMatrixStore{path: path, items: items}
	// validar de entrada un archivo existente de un catálogo anterior
	if _, err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSVMatrixStore) Close() error { return nil }

// loadLocked lee la tabla completa. Archivo ausente o vacío = cero usuarios.
func (s *CSVMatrixStore) loadLocked() ([]models.UserRow, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("abriendo matriz %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leyendo matriz %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if got := len(records[0]) - 1; got != s.items {
		return nil, fmt.Errorf("%w: %d columnas persistidas, catálogo de %d",
			ErrMatrixInconsistent, got, s.items)
	}

	rows := make([]models.UserRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec)-1 != s.items {
			return nil, fmt.Errorf("%w: fila %q con %d celdas", ErrMatrixInconsistent, rec[0], len(rec)-1)
		}
		row := models.UserRow{UserID: rec[0], Cells: make([]int, s.items)}
		for i, v := range rec[1:] {
			if v == "1" {
				row.Cells[i] = 1
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// saveLocked reescribe la tabla completa de forma atómica (tmp + rename).
func (s *CSVMatrixStore) saveLocked(rows []models.UserRow) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "matrix-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)

	header := make([]string, s.items+1)
	header[0] = "user_id"
	for i := 0; i < s.items; i++ {
		header[i+1] = strconv.Itoa(i)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		rec := make([]string, s.items+1)
		rec[0] = row.UserID
		for i, v := range row.Cells {
			rec[i+1] = strconv.Itoa(v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *CSVMatrixStore) GetRow(_ context.Context, userID string) (models.UserRow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked()
	if err != nil {
		return models.UserRow{}, false, err
	}
	for _, row := range rows {
		if row.UserID == userID {
			return row, true, nil
		}
	}
	return models.UserRow{}, false, nil
}

func (s *CSVMatrixStore) UpsertLikes(_ context.Context, userID string, itemIDs []int) error {
	for _, id := range itemIDs {
		if err := validCell(s.items, id, 1); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked()
	if err != nil {
		return err
	}

	idx := -1
	for i, row := range rows {
		if row.UserID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Printf("[matrix] usuario %s no existe, creando fila nueva", userID)
		rows = append(rows, zeroRow(userID, s.items))
		idx = len(rows) - 1
	}

	for _, id := range itemIDs {
		rows[idx].Cells[id] = 1
	}
	return s.saveLocked(rows)
}

func (s *CSVMatrixStore) SetCell(_ context.Context, userID string, itemID, value int) error {
	if err := validCell(s.items, itemID, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if row.UserID == userID {
			rows[i].Cells[itemID] = value
			return s.saveLocked(rows)
		}
	}
	// usuario desconocido: no-op
	return nil
}

func (s *CSVMatrixStore) RowCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *CSVMatrixStore) LikedItems(ctx context.Context, userID string) ([]int, error) {
	row, found, err := s.GetRow(ctx, userID)
	if err != nil || !found {
		return nil, err
	}
	return row.LikedItems(), nil
}

func (s *CSVMatrixStore) Rows(_ context.Context) ([]models.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}
