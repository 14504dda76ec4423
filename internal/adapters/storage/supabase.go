// Package storage provides document source adapters.
// Clean Architecture: Adapters implementing ports.DocumentStore.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// SupabaseStore implements ports.DocumentStore against the Supabase Storage
// REST API for a single bucket.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

// NewSupabaseStore creates a Supabase storage adapter.
func NewSupabaseStore(baseURL, apiKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// listRequest is the Supabase object-list payload.
type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// List enumerates all objects in the bucket.
func (s *SupabaseStore) List(ctx context.Context) ([]entities.ObjectInfo, error) {
	body, err := json.Marshal(listRequest{Prefix: "", Limit: 1000, Offset: 0})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing bucket %s: %w", s.bucket, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing bucket %s: unexpected status %d", s.bucket, resp.StatusCode)
	}

	var objects []entities.ObjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return objects, nil
}

// Download fetches the raw bytes of a named object.
func (s *SupabaseStore) Download(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", name, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *SupabaseStore) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}
