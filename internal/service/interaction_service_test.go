package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
)

func smallCatalog() *catalog.Catalog {
	return catalog.New([]models.Movie{
		{Title: "Alpha", Genres: []string{"Drama"}, Rating: 9.0},
		{Title: "Beta", Genres: []string{"Comedy"}, Rating: 8.0},
		{Title: "Gamma", Genres: []string{"Drama"}, Rating: 7.0},
	})
}

func newInteraction(t *testing.T) (*InteractionService, repository.MatrixStore) {
	t.Helper()
	cat := smallCatalog()
	matrix, err := repository.NewCSVMatrixStore(filepath.Join(t.TempDir(), "matrix.csv"), cat.Len())
	if err != nil {
		t.Fatal(err)
	}
	return NewInteractionService(cat, matrix), matrix
}

func TestRecordActionLike(t *testing.T) {
	ctx := context.Background()
	svc, matrix := newInteraction(t)

	count, err := svc.RecordAction(ctx, "ana", "alpha", ActionLike)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("liked_count = %d, want 1", count)
	}

	// primera fila del usuario: exactamente una celda en 1
	row, found, err := matrix.GetRow(ctx, "ana")
	if err != nil || !found {
		t.Fatalf("fila no creada: %v", err)
	}
	ones := 0
	for _, v := range row.Cells {
		ones += v
	}
	if ones != 1 || len(row.Cells) != 3 {
		t.Errorf("fila nueva con %d unos y %d columnas, want 1 y 3", ones, len(row.Cells))
	}
}

func TestRecordActionIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInteraction(t)

	first, err := svc.RecordAction(ctx, "ana", "Alpha", ActionLike)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.RecordAction(ctx, "ana", "Alpha", ActionLike)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("like repetido cambió el count: %d vs %d", first, second)
	}
}

func TestRecordActionDislikeUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, matrix := newInteraction(t)

	count, err := svc.RecordAction(ctx, "fantasma", "Alpha", ActionDislike)
	if err != nil {
		t.Fatalf("dislike de desconocido no debería fallar: %v", err)
	}
	if count != 0 {
		t.Errorf("liked_count = %d, want 0", count)
	}
	if n, _ := matrix.RowCount(ctx); n != 0 {
		t.Errorf("se creó una fila para el usuario desconocido")
	}
}

func TestRecordActionValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInteraction(t)

	tests := []struct {
		name   string
		userID string
		title  string
		action int
		want   error
	}{
		{name: "user_id vacío", userID: "  ", title: "Alpha", action: 1, want: ErrInvalidPayload},
		{name: "acción inválida", userID: "ana", title: "Alpha", action: 7, want: ErrInvalidPayload},
		{name: "título desconocido", userID: "ana", title: "No Existe", action: 1, want: ErrMovieNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordAction(ctx, tt.userID, tt.title, tt.action); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUserState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInteraction(t)

	// desconocido: cero likes, sin error
	count, hasLiked, err := svc.UserState(ctx, "nadie", "Alpha")
	if err != nil || count != 0 || hasLiked {
		t.Errorf("estado de desconocido = (%d, %v, %v)", count, hasLiked, err)
	}

	if _, err := svc.RecordAction(ctx, "ana", "Alpha", ActionLike); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordAction(ctx, "ana", "Beta", ActionLike); err != nil {
		t.Fatal(err)
	}

	count, hasLiked, err = svc.UserState(ctx, "ana", " ALPHA ")
	if err != nil || count != 2 || !hasLiked {
		t.Errorf("estado = (%d, %v, %v), want (2, true, nil)", count, hasLiked, err)
	}

	// película abierta que no resuelve: has_liked false, no error
	count, hasLiked, err = svc.UserState(ctx, "ana", "No Existe")
	if err != nil || count != 2 || hasLiked {
		t.Errorf("estado con título desconocido = (%d, %v, %v)", count, hasLiked, err)
	}
}

func TestLikedTitles(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInteraction(t)

	if _, err := svc.RecordAction(ctx, "ana", "Gamma", ActionLike); err != nil {
		t.Fatal(err)
	}
	titles, err := svc.LikedTitles(ctx, "ana")
	if err != nil || len(titles) != 1 || titles[0] != "Gamma" {
		t.Errorf("LikedTitles = %v, %v", titles, err)
	}
}
