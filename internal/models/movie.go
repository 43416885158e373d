package models

// Movie es una fila del catálogo IMDB. El ID es la posición ordinal
// dentro del CSV y se mantiene estable mientras viva el snapshot.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating"`
	Poster      string   `json:"poster"`
	Year        string   `json:"year,omitempty"`
	Certificate string   `json:"certificate,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Director    string   `json:"director,omitempty"`
	Overview    string   `json:"overview,omitempty"`
}

// GenreInfo se usa en la home: género + imagen representativa.
type GenreInfo struct {
	Genre string `json:"genre"`
	Image string `json:"image,omitempty"`
}
