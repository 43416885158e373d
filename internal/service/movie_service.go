package service

import (
	"context"
	"fmt"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// MovieService expone el catálogo de solo lectura: detalles, géneros,
// browsing por género, búsqueda fuzzy y top global.
type MovieService struct {
	cat *catalog.Catalog
}

func NewMovieService(cat *catalog.Catalog) *MovieService {
	return &MovieService{cat: cat}
}

func (s *MovieService) Details(_ context.Context, title string) (models.Movie, error) {
	m, ok := s.cat.ByTitle(title)
	if !ok {
		return models.Movie{}, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
	}
	return m, nil
}

// imágenes representativas por género para la home (heredadas del frontend)
var genreImages = map[string]string{
	"Action":    "https://m.media-amazon.com/images/M/MV5BMTc5MDE2ODcwNV5BMl5BanBnXkFtZTgwMzI2NzQ2NzM@._V1_.jpg",
	"Drama":     "https://m.media-amazon.com/images/M/MV5BY2E1NDI5OWEtODJmYi00Nzg2LWI4MjUtODFiMTU2YWViOTU3XkEyXkFqcGc@._V1_.jpg",
	"Comedy":    "https://m.media-amazon.com/images/M/MV5BMjIxMjgxNTk0MF5BMl5BanBnXkFtZTgwNjIyOTg2MDE@._V1_.jpg",
	"Horror":    "https://m.media-amazon.com/images/M/MV5BMTM3NjA1NDMyMV5BMl5BanBnXkFtZTcwMDQzNDMzOQ@@._V1_.jpg",
	"Romance":   "https://upload.wikimedia.org/wikipedia/en/1/18/Titanic_%281997_film%29_poster.png",
	"Adventure": "https://musicart.xboxlive.com/7/90a31100-0000-0000-0000-000000000002/504/image.jpg",
	"Crime":     "https://m.media-amazon.com/images/M/MV5BMTU2NjA1ODgzMF5BMl5BanBnXkFtZTgwMTM2MTI4MjE@._V1_.jpg",
	"Biography": "https://m.media-amazon.com/images/M/MV5BN2JkMDc5MGQtZjg3YS00NmFiLWIyZmQtZTJmNTM5MjVmYTQ4XkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg",
	"History":   "https://m.media-amazon.com/images/M/MV5BNjI3NjY1Mjg3MV5BMl5BanBnXkFtZTgwMzk5MDQ3MjE@._V1_.jpg",
	"Sci-Fi":    "https://m.media-amazon.com/images/M/MV5BYzdjMDAxZGItMjI2My00ODA1LTlkNzItOWFjMDU5ZDJlYWY3XkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg",
	"Fantasy":   "https://m.media-amazon.com/images/M/MV5BNTU1MzgyMDMtMzBlZS00YzczLThmYWEtMjU3YmFlOWEyMjE1XkEyXkFqcGc@._V1_.jpg",
	"Thriller":  "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_.jpg",
	"Animation": "https://m.media-amazon.com/images/M/MV5BMTg5NzY0MzA2MV5BMl5BanBnXkFtZTYwNDc3NTc2._V1_FMjpg_UX1000_.jpg",
	"Family":    "https://m.media-amazon.com/images/M/MV5BMjAwMzAzMzExOF5BMl5BanBnXkFtZTgwOTcwMDA5MTE@._V1_.jpg",
	"War":       "https://m.media-amazon.com/images/M/MV5BMTkxNzI3ODI4Nl5BMl5BanBnXkFtZTgwMjkwMjY4MjE@._V1_FMjpg_UX1000_.jpg",
	"Mystery":   "https://m.media-amazon.com/images/M/MV5BMTg0NjEwNjUxM15BMl5BanBnXkFtZTcwMzk0MjQ5Mg@@._V1_.jpg",
	"Music":     "https://m.media-amazon.com/images/M/MV5BMzUzNDM2NzM2MV5BMl5BanBnXkFtZTgwNTM3NTg4OTE@._V1_.jpg",
	"Musical":   "https://m.media-amazon.com/images/M/MV5BNTRlNmU1NzEtODNkNC00ZGM3LWFmNzQtMjBlMWRiYTcyMGRhXkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg",
	"Sport":     "https://i.pinimg.com/736x/74/64/2e/74642e61235070450a84ddde496aa1f3.jpg",
}

func (s *MovieService) Genres(_ context.Context) []models.GenreInfo {
	genres := s.cat.Genres()
	out := make([]models.GenreInfo, len(genres))
	for i, g := range genres {
		out[i] = models.GenreInfo{Genre: g, Image: genreImages[g]}
	}
	return out
}

func (s *MovieService) ByGenre(_ context.Context, genre string) []models.Movie {
	return s.cat.ByGenre(genre)
}

func (s *MovieService) Search(_ context.Context, query string, limit int) []models.Movie {
	if limit <= 0 {
		limit = 20
	}
	return s.cat.SearchTitles(query, limit)
}

func (s *MovieService) Top(_ context.Context, limit int) []models.Movie {
	if limit <= 0 {
		limit = 20
	}
	return s.cat.TopRated(limit)
}
