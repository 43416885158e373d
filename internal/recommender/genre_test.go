package recommender

import (
	"testing"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Movie{
		{Title: "Drama One", Genres: []string{"Drama"}, Rating: 9.0},
		{Title: "Drama Two", Genres: []string{"Drama"}, Rating: 8.5},
		{Title: "Comedy Night", Genres: []string{"Comedy"}, Rating: 8.0},
		{Title: "Drama Candidate", Genres: []string{"Drama"}, Rating: 7.0},
		{Title: "Comedy Candidate", Genres: []string{"Comedy"}, Rating: 7.0},
		{Title: "Space Doc", Genres: []string{"Documentary"}, Rating: 9.5},
	})
}

func titles(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestScoreByGenre(t *testing.T) {
	cat := testCatalog()

	t.Run("sin likes cae al top global por rating", func(t *testing.T) {
		got := titles(ScoreByGenre(cat, nil, 3))
		want := []string{"Space Doc", "Drama One", "Drama Two"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("posición %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("género dominante gana al empatar rating", func(t *testing.T) {
		// Drama pesa 2, Comedy pesa 1; los candidatos empatan en rating
		liked := []string{"Drama One", "Drama Two", "Comedy Night"}
		got := titles(ScoreByGenre(cat, liked, 10))

		posDrama, posComedy := -1, -1
		for i, title := range got {
			switch title {
			case "Drama Candidate":
				posDrama = i
			case "Comedy Candidate":
				posComedy = i
			}
		}
		if posDrama == -1 || posComedy == -1 {
			t.Fatalf("faltan candidatos en %v", got)
		}
		if posDrama > posComedy {
			t.Errorf("Drama Candidate (peso 2) debería ir antes que Comedy Candidate (peso 1): %v", got)
		}
	})

	t.Run("descarta candidatos sin overlap de género", func(t *testing.T) {
		liked := []string{"Drama One"}
		for _, title := range titles(ScoreByGenre(cat, liked, 10)) {
			if title == "Space Doc" || title == "Comedy Night" {
				t.Errorf("candidato sin overlap %q no debería aparecer", title)
			}
		}
	})

	t.Run("las películas que gustaron no se recomiendan", func(t *testing.T) {
		liked := []string{"Drama One"}
		for _, title := range titles(ScoreByGenre(cat, liked, 10)) {
			if title == "Drama One" {
				t.Error("una película ya likeada volvió como recomendación")
			}
		}
	})

	t.Run("títulos que no resuelven caen al top global", func(t *testing.T) {
		got := titles(ScoreByGenre(cat, []string{"No Existe"}, 2))
		want := []string{"Space Doc", "Drama One"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("posición %d = %q, want %q", i, got[i], want[i])
			}
		}
	})
}
