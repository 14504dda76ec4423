package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// DefaultControlURL is the Pinecone control plane.
const DefaultControlURL = "https://api.pinecone.io"

// PineconeIndex implements ports.VectorIndex against Pinecone's REST API.
// Index management goes to the control plane; stats, upserts, and queries go
// to the per-index data-plane host, which is resolved once and cached.
type PineconeIndex struct {
	apiKey     string
	controlURL string
	cloud      string
	region     string
	client     *http.Client

	mu    sync.Mutex
	hosts map[string]string // index name -> data-plane base URL
}

// NewPineconeIndex creates a Pinecone adapter. The serverless deployment spec
// uses the given cloud and region for newly created indexes.
func NewPineconeIndex(controlURL, apiKey, cloud, region string) *PineconeIndex {
	if controlURL == "" {
		controlURL = DefaultControlURL
	}
	if cloud == "" {
		cloud = "aws"
	}
	if region == "" {
		region = "us-east-1"
	}
	return &PineconeIndex{
		apiKey:     apiKey,
		controlURL: controlURL,
		cloud:      cloud,
		region:     region,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		hosts: make(map[string]string),
	}
}

// indexDescription is the control-plane index description.
type indexDescription struct {
	Name string `json:"name"`
	Host string `json:"host"`
}

// createIndexRequest is the control-plane create payload.
type createIndexRequest struct {
	Name      string    `json:"name"`
	Dimension int       `json:"dimension"`
	Metric    string    `json:"metric"`
	Spec      indexSpec `json:"spec"`
}

type indexSpec struct {
	Serverless serverlessSpec `json:"serverless"`
}

type serverlessSpec struct {
	Cloud  string `json:"cloud"`
	Region string `json:"region"`
}

// statsResponse is the data-plane describe_index_stats response.
type statsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
}

// upsertRequest is the data-plane upsert payload.
type upsertRequest struct {
	Vectors []entities.Vector `json:"vectors"`
}

// queryRequest is the data-plane query payload.
type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

// queryResponse is the data-plane query response.
type queryResponse struct {
	Matches []struct {
		ID       string             `json:"id"`
		Score    float64            `json:"score"`
		Metadata *entities.Metadata `json:"metadata"`
	} `json:"matches"`
}

// EnsureIndex creates the named index with a serverless spec if it does not
// exist yet.
func (p *PineconeIndex) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	var desc indexDescription
	status, err := p.do(ctx, http.MethodGet, p.controlURL+"/indexes/"+name, nil, &desc)
	if err != nil {
		return fmt.Errorf("describing index: %w", err)
	}
	if status == http.StatusOK {
		p.cacheHost(name, desc.Host)
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("describing index: unexpected status %d", status)
	}

	req := createIndexRequest{
		Name:      name,
		Dimension: dimension,
		Metric:    metric,
		Spec: indexSpec{
			Serverless: serverlessSpec{Cloud: p.cloud, Region: p.region},
		},
	}
	status, err = p.do(ctx, http.MethodPost, p.controlURL+"/indexes", req, &desc)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return fmt.Errorf("creating index: unexpected status %d", status)
	}
	p.cacheHost(name, desc.Host)
	return nil
}

// Stats reports the total vector count for the named index.
func (p *PineconeIndex) Stats(ctx context.Context, name string) (entities.IndexStats, error) {
	host, err := p.host(ctx, name)
	if err != nil {
		return entities.IndexStats{}, err
	}

	var stats statsResponse
	status, err := p.do(ctx, http.MethodPost, host+"/describe_index_stats", struct{}{}, &stats)
	if err != nil {
		return entities.IndexStats{}, fmt.Errorf("describing index stats: %w", err)
	}
	if status != http.StatusOK {
		return entities.IndexStats{}, fmt.Errorf("describing index stats: unexpected status %d", status)
	}
	return entities.IndexStats{TotalVectorCount: stats.TotalVectorCount}, nil
}

// Upsert writes vectors to the named index.
func (p *PineconeIndex) Upsert(ctx context.Context, name string, vectors []entities.Vector) error {
	host, err := p.host(ctx, name)
	if err != nil {
		return err
	}

	status, err := p.do(ctx, http.MethodPost, host+"/vectors/upsert", upsertRequest{Vectors: vectors}, nil)
	if err != nil {
		return fmt.Errorf("upserting vectors: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("upserting vectors: unexpected status %d", status)
	}
	return nil
}

// Query returns the topK nearest matches with metadata included.
func (p *PineconeIndex) Query(ctx context.Context, name string, vector []float32, topK int) ([]entities.QueryMatch, error) {
	host, err := p.host(ctx, name)
	if err != nil {
		return nil, err
	}

	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}
	var resp queryResponse
	status, err := p.do(ctx, http.MethodPost, host+"/query", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("querying index: unexpected status %d", status)
	}

	matches := make([]entities.QueryMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = entities.QueryMatch{Score: m.Score, Metadata: m.Metadata}
	}
	return matches, nil
}

// host resolves and caches the data-plane base URL for an index.
func (p *PineconeIndex) host(ctx context.Context, name string) (string, error) {
	p.mu.Lock()
	cached, ok := p.hosts[name]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	var desc indexDescription
	status, err := p.do(ctx, http.MethodGet, p.controlURL+"/indexes/"+name, nil, &desc)
	if err != nil {
		return "", fmt.Errorf("resolving index host: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("resolving index host: unexpected status %d", status)
	}
	return p.cacheHost(name, desc.Host), nil
}

func (p *PineconeIndex) cacheHost(name, host string) string {
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	p.mu.Lock()
	p.hosts[name] = host
	p.mu.Unlock()
	return host
}

// do sends one JSON request and decodes the response body into out when the
// status carries a body worth decoding. The status code is always returned.
func (p *PineconeIndex) do(ctx context.Context, method, url string, body, out interface{}) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Api-Key", p.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling Pinecone: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
