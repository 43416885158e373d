package service

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/config"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
)

// catálogo de 20 películas: 0..11 Drama, 12..19 Comedy, rating decreciente
func bigCatalog() *catalog.Catalog {
	movies := make([]models.Movie, 20)
	for i := range movies {
		genre := "Drama"
		if i >= 12 {
			genre = "Comedy"
		}
		movies[i] = models.Movie{
			Title:  fmt.Sprintf("Movie %02d", i),
			Genres: []string{genre},
			Rating: 9.0 - float64(i)*0.1,
		}
	}
	return catalog.New(movies)
}

func testConfig() *config.Config {
	return &config.Config{
		LowLikeThreshold: 10,
		LowUserThreshold: 2,
		MinSimilarity:    0.1,
		MaxNeighbors:     10,
		ColdPoolSize:     30,
		RecommendLimit:   15,
		CacheTTLSeconds:  60,
	}
}

func newRecommend(t *testing.T) (*RecommendService, repository.MatrixStore, *catalog.Catalog) {
	t.Helper()
	cat := bigCatalog()
	matrix, err := repository.NewCSVMatrixStore(filepath.Join(t.TempDir(), "matrix.csv"), cat.Len())
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	return NewRecommendService(cat, matrix, testConfig(), rng), matrix, cat
}

func likeRange(t *testing.T, matrix repository.MatrixStore, userID string, from, to int) {
	t.Helper()
	ids := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		ids = append(ids, i)
	}
	if err := matrix.UpsertLikes(context.Background(), userID, ids); err != nil {
		t.Fatal(err)
	}
}

func TestRecommendColdStart(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRecommend(t)

	t.Run("con película abierta sortea dentro del pool del género primario", func(t *testing.T) {
		movies, dec, err := svc.Recommend(ctx, RecRequest{UserID: "nuevo", OpenedMovie: "Movie 00", N: 5})
		if err != nil {
			t.Fatal(err)
		}
		if dec.Tier != TierCold {
			t.Fatalf("tier = %s, want %s", dec.Tier, TierCold)
		}
		if len(movies) != 5 {
			t.Fatalf("resultados = %d, want 5", len(movies))
		}
		// membership en el pool: Drama, nunca la película abierta
		dramaTitles := map[string]bool{}
		for i := 1; i < 12; i++ {
			dramaTitles[fmt.Sprintf("Movie %02d", i)] = true
		}
		for _, m := range movies {
			if m.Title == "Movie 00" {
				t.Error("la película abierta volvió recomendada")
			}
			if !dramaTitles[m.Title] {
				t.Errorf("%q está fuera del pool de Drama", m.Title)
			}
		}
	})

	t.Run("película abierta que no resuelve cae al top global", func(t *testing.T) {
		movies, dec, err := svc.Recommend(ctx, RecRequest{UserID: "nuevo2", OpenedMovie: "No Existe", N: 3})
		if err != nil {
			t.Fatal(err)
		}
		if dec.Tier != TierCold {
			t.Fatalf("tier = %s, want %s", dec.Tier, TierCold)
		}
		want := []string{"Movie 00", "Movie 01", "Movie 02"}
		for i, m := range movies {
			if m.Title != want[i] {
				t.Errorf("posición %d = %q, want %q", i, m.Title, want[i])
			}
		}
	})
}

func TestCacheKeyDependsOnOpenedMovie(t *testing.T) {
	base := RecRequest{UserID: "ana", N: 10}

	a := base
	a.OpenedMovie = "Movie 00"
	b := base
	b.OpenedMovie = "Movie 05"

	if cacheKey(a) == cacheKey(b) {
		t.Fatalf("dos películas abiertas distintas comparten clave: %s", cacheKey(a))
	}
	// el título entra normalizado, mayúsculas y espacios no fragmentan
	c := base
	c.OpenedMovie = "  MOVIE 00 "
	if cacheKey(a) != cacheKey(c) {
		t.Errorf("clave sensible a mayúsculas/espacios: %s vs %s", cacheKey(a), cacheKey(c))
	}
}

func TestRecommendTierBoundary(t *testing.T) {
	ctx := context.Background()
	svc, matrix, _ := newRecommend(t)

	// población suficiente para la rama colaborativa
	likeRange(t, matrix, "otro1", 0, 11)
	likeRange(t, matrix, "otro2", 0, 11)

	t.Run("9 likes sigue en la rama de género", func(t *testing.T) {
		likeRange(t, matrix, "nueve", 0, 9)
		_, dec, err := svc.Recommend(ctx, RecRequest{UserID: "nueve", N: 5})
		if err != nil {
			t.Fatal(err)
		}
		if dec.Tier != TierLow {
			t.Errorf("tier con 9 likes = %s, want %s", dec.Tier, TierLow)
		}
	})

	t.Run("10 likes pasa a colaborativo", func(t *testing.T) {
		likeRange(t, matrix, "diez", 0, 10)
		_, dec, err := svc.Recommend(ctx, RecRequest{UserID: "diez", N: 5})
		if err != nil {
			t.Fatal(err)
		}
		if dec.Tier != TierCollaborative {
			t.Errorf("tier con 10 likes = %s, want %s", dec.Tier, TierCollaborative)
		}
	})
}

func TestRecommendCollaborative(t *testing.T) {
	ctx := context.Background()
	svc, matrix, _ := newRecommend(t)

	// target con 10 likes; vecino casi idéntico con un like extra (item 10)
	likeRange(t, matrix, "target", 0, 10)
	likeRange(t, matrix, "vecino", 0, 11)

	movies, dec, err := svc.Recommend(ctx, RecRequest{UserID: "target", N: 5})
	if err != nil {
		t.Fatal(err)
	}
	if dec.Tier != TierCollaborative {
		t.Fatalf("tier = %s, want %s", dec.Tier, TierCollaborative)
	}
	if len(movies) != 1 || movies[0].Title != "Movie 10" {
		t.Errorf("recomendaciones = %v, want solo Movie 10", movies)
	}
}

func TestRecommendLowTierUsesGenres(t *testing.T) {
	ctx := context.Background()
	svc, matrix, _ := newRecommend(t)

	likeRange(t, matrix, "otro1", 12, 15)
	likeRange(t, matrix, "ana", 0, 2) // 2 likes de Drama

	movies, dec, err := svc.Recommend(ctx, RecRequest{UserID: "ana", N: 4})
	if err != nil {
		t.Fatal(err)
	}
	if dec.Tier != TierLow {
		t.Fatalf("tier = %s, want %s", dec.Tier, TierLow)
	}
	// solo candidatos Drama (overlap > 0), sin los ya likeados
	for _, m := range movies {
		if m.Title == "Movie 00" || m.Title == "Movie 01" {
			t.Errorf("película ya likeada %q volvió recomendada", m.Title)
		}
	}
	if len(movies) != 4 {
		t.Errorf("resultados = %d, want 4", len(movies))
	}
}

func TestRecommendByGenreEmptyFallsBackToTopRated(t *testing.T) {
	svc, _, _ := newRecommend(t)

	got := svc.RecommendByGenre(context.Background(), nil, 5)
	want := []string{"Movie 00", "Movie 01", "Movie 02", "Movie 03", "Movie 04"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("posición %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNeighborsEndpoint(t *testing.T) {
	ctx := context.Background()
	svc, matrix, _ := newRecommend(t)

	likeRange(t, matrix, "ana", 0, 3)
	likeRange(t, matrix, "bob", 0, 3)
	likeRange(t, matrix, "carl", 15, 17)

	neighbors, err := svc.Neighbors(ctx, "ana", -1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(neighbors) != 1 || neighbors[0].UserID != "bob" {
		t.Errorf("vecinos = %v, want solo bob", neighbors)
	}
	if neighbors[0].Score < 0.99 {
		t.Errorf("score de gemelo = %v, want ~1", neighbors[0].Score)
	}

	// usuario sin fila: lista vacía, no error
	empty, err := svc.Neighbors(ctx, "nadie", -1, 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("vecinos de desconocido = %v, %v", empty, err)
	}
}
