package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

func TestSupabaseStore_List(t *testing.T) {
	var gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/storage/v1/object/list/pdfs", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")

		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1000, req.Limit)

		json.NewEncoder(w).Encode([]map[string]string{
			{"name": "ipc.pdf"},
			{"name": "consumer-protection.pdf"},
		})
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "pdfs")
	objects, err := store.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []entities.ObjectInfo{
		{Name: "ipc.pdf"},
		{Name: "consumer-protection.pdf"},
	}, objects)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotAPIKey)
}

func TestSupabaseStore_ListErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "bad-key", "pdfs")
	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSupabaseStore_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/storage/v1/object/pdfs/ipc.pdf", r.URL.Path)
		w.Write([]byte("%PDF-1.4 payload"))
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "pdfs")
	data, err := store.Download(context.Background(), "ipc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 payload"), data)
}

func TestSupabaseStore_DownloadMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "pdfs")
	_, err := store.Download(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestSupabaseForms_Submit(t *testing.T) {
	var got entities.ContactForm
	var gotPrefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/v1/user_forms", r.URL.Path)
		gotPrefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	forms := NewSupabaseForms(srv.URL, "service-key")
	form := entities.ContactForm{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Subject:   "Tenancy dispute",
		Message:   "Need help with a tenancy dispute.",
	}
	require.NoError(t, forms.Submit(context.Background(), form))

	assert.Equal(t, form, got)
	assert.Equal(t, "return=minimal", gotPrefer)
}

func TestSupabaseForms_SubmitErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	forms := NewSupabaseForms(srv.URL, "service-key")
	err := forms.Submit(context.Background(), entities.ContactForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
