// matrixctl migra la matriz user-item entre backends (csv, bolt, mongo)
// y muestra un resumen de filas. Útil para pasar del CSV original al
// backend transaccional sin perder likes.
//
// Uso:
//
//	matrixctl -from csv -to bolt
//	matrixctl -from csv -summary
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/config"
	"github.com/anjan1920/movie-recommendation-engine/internal/db"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
)

func main() {
	from := flag.String("from", "csv", "backend origen: csv | bolt | mongo")
	to := flag.String("to", "", "backend destino (vacío = solo leer)")
	summary := flag.Bool("summary", false, "imprimir resumen de filas del origen")
	flag.Parse()

	cfg := config.Load()

	cat, err := catalog.Load(cfg.IMDBPath)
	if err != nil {
		log.Fatalf("[catalog] %v", err)
	}

	if *from == "mongo" || *to == "mongo" {
		db.InitMongo(cfg)
	}

	ctx := context.Background()

	src, err := openBackend(cfg, *from, cat.Len())
	if err != nil {
		log.Fatalf("[matrixctl] origen %s: %v", *from, err)
	}
	defer src.Close()

	rows, err := src.Rows(ctx)
	if err != nil {
		log.Fatalf("[matrixctl] leyendo origen: %v", err)
	}
	log.Printf("[matrixctl] %d filas en backend %s", len(rows), *from)

	if *summary {
		for _, row := range rows {
			fmt.Printf("%s\t%d likes\n", row.UserID, row.LikedCount())
		}
	}

	if *to == "" {
		return
	}
	if *to == *from {
		log.Fatalf("[matrixctl] origen y destino son el mismo backend")
	}

	dst, err := openBackend(cfg, *to, cat.Len())
	if err != nil {
		log.Fatalf("[matrixctl] destino %s: %v", *to, err)
	}
	defer dst.Close()

	// las filas destino nacen en cero, con copiar los likes alcanza
	migrated := 0
	for _, row := range rows {
		liked := row.LikedItems()
		if len(liked) == 0 {
			// igual creamos la fila: usuario conocido sin likes
			if err := dst.UpsertLikes(ctx, row.UserID, nil); err != nil {
				log.Fatalf("[matrixctl] migrando %s: %v", row.UserID, err)
			}
			migrated++
			continue
		}
		if err := dst.UpsertLikes(ctx, row.UserID, liked); err != nil {
			log.Fatalf("[matrixctl] migrando %s: %v", row.UserID, err)
		}
		migrated++
	}
	log.Printf("[matrixctl] %d filas migradas de %s a %s", migrated, *from, *to)
}

func openBackend(cfg *config.Config, backend string, items int) (repository.MatrixStore, error) {
	c := *cfg
	c.MatrixBackend = backend
	return repository.OpenMatrix(&c, items)
}
