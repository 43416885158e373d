package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjan1920/movie-recommendation-engine/internal/config"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// ErrMatrixInconsistent: la matriz persistida no coincide con el número
// de columnas del catálogo actual. Es el único error fatal del core;
// nunca se parchea en silencio.
var ErrMatrixInconsistent = errors.New("user-item matrix inconsistent with catalog")

// MatrixStore es la matriz binaria user × item detrás de una interfaz,
// para poder cambiar el mecanismo de almacenamiento sin tocar el motor.
//
// Contratos:
//   - UpsertLikes crea la fila en cero si no existe y marca las celdas
//     pedidas en 1 sin tocar el resto. Es idempotente.
//   - SetCell sobre un usuario desconocido es un no-op seguro.
//   - Un recurso vacío o inexistente equivale a "cero usuarios".
type MatrixStore interface {
	GetRow(ctx context.Context, userID string) (models.UserRow, bool, error)
	UpsertLikes(ctx context.Context, userID string, itemIDs []int) error
	SetCell(ctx context.Context, userID string, itemID, value int) error
	RowCount(ctx context.Context) (int, error)
	LikedItems(ctx context.Context, userID string) ([]int, error)
	// Rows devuelve un snapshot de todas las filas; el motor de
	// similitud trabaja siempre sobre ese snapshot.
	Rows(ctx context.Context) ([]models.UserRow, error)
	Close() error
}

// OpenMatrix abre el backend configurado. `items` es el número de
// columnas, o sea len(catálogo). Para "mongo" se asume db.InitMongo ya corrido.
func OpenMatrix(cfg *config.Config, items int) (MatrixStore, error) {
	switch cfg.MatrixBackend {
	case "csv":
		return NewCSVMatrixStore(cfg.MatrixPath, items)
	case "bolt":
		return NewBoltMatrixStore(cfg.BoltPath, items)
	case "mongo":
		return NewMongoMatrixStore(context.Background(), items)
	default:
		return nil, fmt.Errorf("backend de matriz desconocido: %q", cfg.MatrixBackend)
	}
}

func validCell(items, itemID, value int) error {
	if itemID < 0 || itemID >= items {
		return fmt.Errorf("item %d fuera de rango (catálogo de %d)", itemID, items)
	}
	if value != 0 && value != 1 {
		return fmt.Errorf("valor de celda inválido %d (debe ser 0 o 1)", value)
	}
	return nil
}

func zeroRow(userID string, items int) models.UserRow {
	return models.UserRow{UserID: userID, Cells: make([]int, items)}
}
