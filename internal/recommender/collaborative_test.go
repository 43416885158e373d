package recommender

import (
	"testing"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

func TestRank(t *testing.T) {
	rows := []models.UserRow{
		row("target", 1, 0, 0, 0, 0),
		row("strong", 1, 1, 0, 0, 0),
		row("weak1", 1, 0, 1, 0, 0),
		row("weak2", 1, 0, 1, 0, 0),
	}

	t.Run("nunca recomienda lo que el objetivo ya marcó", func(t *testing.T) {
		neighbors := []Neighbor{{UserID: "strong", Score: 1}, {UserID: "weak1", Score: 1}}
		for _, id := range Rank(rows, "target", neighbors, 10) {
			if id == 0 {
				t.Error("el item 0 ya era un like del objetivo y volvió rankeado")
			}
		}
	})

	t.Run("dos vecinos débiles superan a uno fuerte", func(t *testing.T) {
		neighbors := []Neighbor{
			{UserID: "strong", Score: 0.9},
			{UserID: "weak1", Score: 0.5},
			{UserID: "weak2", Score: 0.5},
		}
		got := Rank(rows, "target", neighbors, 10)
		if len(got) != 2 {
			t.Fatalf("esperaba 2 items, got %v", got)
		}
		// item 2: 0.5+0.5=1.0 > item 1: 0.9
		if got[0] != 2 || got[1] != 1 {
			t.Errorf("got %v, want [2 1]", got)
		}
	})

	t.Run("usuario objetivo desconocido devuelve vacío", func(t *testing.T) {
		neighbors := []Neighbor{{UserID: "strong", Score: 1}}
		if got := Rank(rows, "nadie", neighbors, 10); got != nil {
			t.Errorf("esperaba nil, got %v", got)
		}
	})

	t.Run("sin vecinos con items no vistos devuelve vacío", func(t *testing.T) {
		same := []models.UserRow{
			row("target", 1, 1, 0),
			row("twin", 1, 1, 0),
		}
		neighbors := []Neighbor{{UserID: "twin", Score: 1}}
		if got := Rank(same, "target", neighbors, 10); got != nil {
			t.Errorf("esperaba nil, got %v", got)
		}
	})

	t.Run("trunca a topN", func(t *testing.T) {
		neighbors := []Neighbor{
			{UserID: "strong", Score: 0.9},
			{UserID: "weak1", Score: 0.5},
		}
		if got := Rank(rows, "target", neighbors, 1); len(got) != 1 {
			t.Errorf("topN=1 devolvió %v", got)
		}
	})
}
