package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// formsTable is the PostgREST table holding contact submissions.
const formsTable = "user_forms"

// SupabaseForms implements ports.FormStore by inserting rows through the
// Supabase PostgREST endpoint.
type SupabaseForms struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabaseForms creates a contact-form store adapter.
func NewSupabaseForms(baseURL, apiKey string) *SupabaseForms {
	return &SupabaseForms{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit inserts one contact-form row.
func (f *SupabaseForms) Submit(ctx context.Context, form entities.ContactForm) error {
	body, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshaling form: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", f.baseURL, formsTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", f.apiKey)
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("submitting form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("submitting form: unexpected status %d", resp.StatusCode)
	}
	return nil
}
