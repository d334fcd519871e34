package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// DefaultTimeout bounds every request issued by RESTClient unless the
// constructor is given an explicit value.
const DefaultTimeout = 10 * time.Second

// RESTClient implements Client over the backend's JSON REST API.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	token string
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client for the API at baseURL. The timeout applies
// uniformly to every request; zero selects DefaultTimeout.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &RESTClient{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *RESTClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *RESTClient) get(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil)
}

func (c *RESTClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, path, body)
}

func (c *RESTClient) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPut, path, body)
}

func (c *RESTClient) patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPatch, path, body)
}

func (c *RESTClient) delete(ctx context.Context, path string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *RESTClient) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(respBody, &errResp)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errResp.Detail}
	}

	return respBody, nil
}

func (c *RESTClient) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	resp, err := c.post(ctx, "/api/auth/login", models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var result models.TokenResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := c.post(ctx, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.get(ctx, "/api/auth/me")
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/api/auth/logout", nil)
	return err
}

func (c *RESTClient) AuthProviders(ctx context.Context) (*models.AuthProviders, error) {
	resp, err := c.get(ctx, "/api/auth/providers")
	if err != nil {
		return nil, err
	}

	var result models.AuthProviders
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode providers response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) ListCollections(ctx context.Context) ([]models.Collection, error) {
	resp, err := c.get(ctx, "/api/collections")
	if err != nil {
		return nil, err
	}

	var result []models.Collection
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode collections response: %w", err)
	}
	return result, nil
}

func (c *RESTClient) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	resp, err := c.get(ctx, "/api/collections/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var result models.Collection
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode collection response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) CreateCollection(ctx context.Context, req models.CollectionRequest) (*models.Collection, error) {
	resp, err := c.post(ctx, "/api/collections", req)
	if err != nil {
		return nil, err
	}

	var result models.Collection
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode collection response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (*models.Collection, error) {
	resp, err := c.put(ctx, "/api/collections/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var result models.Collection
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode collection response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) DeleteCollection(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/collections/"+url.PathEscape(id))
}

func (c *RESTClient) ListQAPairs(ctx context.Context, collectionID string) ([]models.QAPair, error) {
	resp, err := c.get(ctx, "/api/collections/"+url.PathEscape(collectionID)+"/qa-pairs")
	if err != nil {
		return nil, err
	}

	var result []models.QAPair
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode qa pairs response: %w", err)
	}
	return result, nil
}

func (c *RESTClient) CreateQAPair(ctx context.Context, collectionID string, req models.QAPairCreate) (*models.QAPair, error) {
	resp, err := c.post(ctx, "/api/collections/"+url.PathEscape(collectionID)+"/qa-pairs", req)
	if err != nil {
		return nil, err
	}

	var result models.QAPair
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode qa pair response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) GetQAPair(ctx context.Context, id string) (*models.QAPair, error) {
	resp, err := c.get(ctx, "/api/collections/qa-pairs/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var result models.QAPair
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode qa pair response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) UpdateQAPair(ctx context.Context, id string, req models.QAPairUpdate) (*models.QAPair, error) {
	resp, err := c.patch(ctx, "/api/collections/qa-pairs/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var result models.QAPair
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode qa pair response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) DeleteQAPair(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/collections/qa-pairs/"+url.PathEscape(id))
}

func (c *RESTClient) SearchDocuments(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	resp, err := c.post(ctx, "/api/retrieval/search", req)
	if err != nil {
		return nil, err
	}

	var result models.SearchResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) ListSources(ctx context.Context, page, limit int) (*models.SourceList, error) {
	path := "/api/retrieval/data_sources"
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result models.SourceList
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode sources response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) ListTemplates(ctx context.Context) ([]models.Template, error) {
	resp, err := c.get(ctx, "/api/retrieval/templates")
	if err != nil {
		return nil, err
	}

	var result []models.Template
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode templates response: %w", err)
	}
	return result, nil
}

func (c *RESTClient) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	resp, err := c.get(ctx, "/api/retrieval/templates/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var result models.Template
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode template response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.GeneratedAnswer, error) {
	resp, err := c.post(ctx, "/api/generation/generate", req)
	if err != nil {
		return nil, err
	}

	var result models.GeneratedAnswer
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	return &result, nil
}

func (c *RESTClient) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	resp, err := c.get(ctx, "/api/generation/models")
	if err != nil {
		return nil, err
	}

	var result []models.ModelInfo
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}
	return result, nil
}

func (c *RESTClient) Health(ctx context.Context) (*models.Health, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return nil, err
	}

	var result models.Health
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &result, nil
}
