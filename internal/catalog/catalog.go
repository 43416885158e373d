package catalog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog es el snapshot inmutable del dataset IMDB. Se construye una
// sola vez en el arranque y se comparte por referencia: nadie lo muta
// después de Load/New.
type Catalog struct {
	movies  []models.Movie
	byTitle map[string]int // título normalizado -> id ordinal
	titles  []string       // en orden ordinal, para búsqueda fuzzy
}

// columnas mínimas que exige el CSV
var requiredColumns = []string{"Series_Title", "Genre", "IMDB_Rating", "Poster_Link"}

// Load lee el CSV de IMDB y arma el catálogo. La posición de cada fila
// (sin contar el header) es el id de la película.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo catálogo %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leyendo catálogo: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catálogo vacío: %s", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("catálogo sin columna %q", name)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	movies := make([]models.Movie, 0, len(records)-1)
	for i, row := range records[1:] {
		rating, err := strconv.ParseFloat(field(row, "IMDB_Rating"), 64)
		if err != nil {
			// fila con rating ilegible: la dejamos con 0, no rompemos la carga
			rating = 0
		}

		movies = append(movies, models.Movie{
			ID:          i,
			Title:       field(row, "Series_Title"),
			Genres:      SplitGenres(field(row, "Genre")),
			Rating:      rating,
			Poster:      field(row, "Poster_Link"),
			Year:        field(row, "Released_Year"),
			Certificate: field(row, "Certificate"),
			Runtime:     field(row, "Runtime"),
			Director:    field(row, "Director"),
			Overview:    field(row, "Overview"),
		})
	}

	log.Printf("[catalog] %d películas cargadas desde %s", len(movies), path)
	return New(movies), nil
}

// New arma un catálogo desde películas ya construidas (tests y tooling).
// Reasigna los ids a la posición dentro del slice.
func New(movies []models.Movie) *Catalog {
	c := &Catalog{
		movies:  make([]models.Movie, len(movies)),
		byTitle: make(map[string]int, len(movies)),
		titles:  make([]string, len(movies)),
	}
	copy(c.movies, movies)
	for i := range c.movies {
		c.movies[i].ID = i
		c.byTitle[NormalizeTitle(c.movies[i].Title)] = i
		c.titles[i] = c.movies[i].Title
	}
	return c
}

// NormalizeTitle es la clave de lookup secundaria: sin espacios
// sobrantes y en minúsculas.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SplitGenres parte el campo Genre del CSV ("Action, Drama") en tokens limpios.
func SplitGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.movies) }

// ByID devuelve la película con ese id ordinal.
func (c *Catalog) ByID(id int) (models.Movie, bool) {
	if id < 0 || id >= len(c.movies) {
		return models.Movie{}, false
	}
	return c.movies[id], true
}

// ByTitle busca por título normalizado.
func (c *Catalog) ByTitle(title string) (models.Movie, bool) {
	id, ok := c.byTitle[NormalizeTitle(title)]
	if !ok {
		return models.Movie{}, false
	}
	return c.movies[id], true
}

// Movies devuelve el slice interno. Es de solo lectura por contrato.
func (c *Catalog) Movies() []models.Movie { return c.movies }

// TopRated devuelve las top-n películas por rating descendente.
func (c *Catalog) TopRated(n int) []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ByGenre devuelve las películas que llevan ese género (match exacto,
// sin distinguir mayúsculas).
func (c *Catalog) ByGenre(genre string) []models.Movie {
	want := strings.ToLower(strings.TrimSpace(genre))
	var out []models.Movie
	for _, m := range c.movies {
		for _, g := range m.Genres {
			if strings.ToLower(g) == want {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Genres devuelve el set de géneros del catálogo, ordenado.
func (c *Catalog) Genres() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range c.movies {
		for _, g := range m.Genres {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	sort.Strings(out)
	return out
}

// SearchTitles hace búsqueda fuzzy sobre los títulos y devuelve hasta
// limit películas ordenadas por relevancia.
func (c *Catalog) SearchTitles(query string, limit int) []models.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, c.titles)
	sort.Sort(ranks)

	var out []models.Movie
	for _, rk := range ranks {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, c.movies[rk.OriginalIndex])
	}
	return out
}
