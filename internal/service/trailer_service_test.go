package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTrailerAgainst(t *testing.T, handler http.HandlerFunc) *TrailerService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := NewTrailerService("clave-de-prueba")
	svc.baseURL = srv.URL
	return svc
}

func TestFetchVideoID(t *testing.T) {
	ctx := context.Background()

	t.Run("devuelve el videoId del primer resultado", func(t *testing.T) {
		svc := newTrailerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "Inception trailer" {
				t.Errorf("q = %q, want %q", got, "Inception trailer")
			}
			w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"abc123"}}]}`))
		})

		id, err := svc.FetchVideoID(ctx, "Inception")
		if err != nil {
			t.Fatal(err)
		}
		if id != "abc123" {
			t.Errorf("videoId = %q, want abc123", id)
		}
	})

	t.Run("sin resultados es not found", func(t *testing.T) {
		svc := newTrailerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[]}`))
		})

		_, err := svc.FetchVideoID(ctx, "Pelicula Inexistente")
		if !errors.Is(err, ErrTrailerNotFound) {
			t.Errorf("err = %v, want ErrTrailerNotFound", err)
		}
	})

	t.Run("primer resultado que no es video es not found", func(t *testing.T) {
		svc := newTrailerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[{"id":{"kind":"youtube#channel","videoId":""}}]}`))
		})

		_, err := svc.FetchVideoID(ctx, "Inception")
		if !errors.Is(err, ErrTrailerNotFound) {
			t.Errorf("err = %v, want ErrTrailerNotFound", err)
		}
	})

	t.Run("error del upstream es unavailable", func(t *testing.T) {
		svc := newTrailerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := svc.FetchVideoID(ctx, "Inception")
		if !errors.Is(err, ErrTrailerUnavailable) {
			t.Errorf("err = %v, want ErrTrailerUnavailable", err)
		}
	})

	t.Run("sin API key es unavailable sin tocar la red", func(t *testing.T) {
		svc := NewTrailerService("")
		_, err := svc.FetchVideoID(ctx, "Inception")
		if !errors.Is(err, ErrTrailerUnavailable) {
			t.Errorf("err = %v, want ErrTrailerUnavailable", err)
		}
	})
}
