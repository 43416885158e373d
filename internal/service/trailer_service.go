package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const ytSearchURL = "https://www.googleapis.com/youtube/v3/search"

// TrailerService resuelve "<título> trailer" contra la YouTube Data
// API v3 y devuelve el videoId del primer resultado. Cualquier fallo
// upstream se traduce a un error tipado; nunca tumba el request.
type TrailerService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTrailerService(apiKey string) *TrailerService {
	return &TrailerService{
		apiKey:  apiKey,
		baseURL: ytSearchURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

func (s *TrailerService) FetchVideoID(ctx context.Context, title string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: YT_API_KEY no configurada", ErrTrailerUnavailable)
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", title+" trailer")
	q.Set("type", "video")
	q.Set("maxResults", "1")
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrailerUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("[trailer] YouTube API status %d para %q", res.StatusCode, title)
		return "", fmt.Errorf("%w: status %d", ErrTrailerUnavailable, res.StatusCode)
	}

	var parsed ytSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrailerUnavailable, err)
	}

	if len(parsed.Items) == 0 {
		return "", fmt.Errorf("%w: sin resultados para %q", ErrTrailerNotFound, title)
	}
	first := parsed.Items[0]
	if first.ID.Kind != "youtube#video" || first.ID.VideoID == "" {
		return "", fmt.Errorf("%w: primer resultado no es un video", ErrTrailerNotFound)
	}

	return first.ID.VideoID, nil
}
