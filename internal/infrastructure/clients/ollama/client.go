package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jaassure/proposal-intelligence/pkg/config"
)

const defaultBaseURL = "http://localhost:11434"

// Client talks to a local Ollama server for generation and embeddings.
type Client struct {
	baseURL       string
	generateModel string
	embedModel    string
	httpClient    *http.Client
	limiter       *tokenBucket
}

// NewClient creates a new Ollama client.
func NewClient(cfg *config.OllamaConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("ollama config is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	generateModel := cfg.GenerateModel
	if generateModel == "" {
		generateModel = "llama3:8b"
	}
	embedModel := cfg.EmbedModel
	if embedModel == "" {
		embedModel = "nomic-embed-text"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		generateModel: generateModel,
		embedModel:    embedModel,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RatePerMinute, 5),
	}, nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Generate runs one completion against /api/generate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is required")
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordOllamaMetric(ctx, c.generateModel, "generate", 0, 0, err)
			return "", err
		}
		recordOllamaRateLimitWait(ctx, c.generateModel, time.Since(waitStart))
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.generateModel,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.post(ctx, "/api/generate", body)
	if err != nil {
		recordOllamaMetric(ctx, c.generateModel, "generate", 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("ollama generate failed with status %d", resp.StatusCode)
		recordOllamaMetric(ctx, c.generateModel, "generate", resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordOllamaMetric(ctx, c.generateModel, "generate", resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if strings.TrimSpace(envelope.Response) == "" {
		err := errors.New("ollama response missing output text")
		recordOllamaMetric(ctx, c.generateModel, "generate", resp.StatusCode, time.Since(start), err)
		return "", err
	}

	recordOllamaMetric(ctx, c.generateModel, "generate", resp.StatusCode, time.Since(start), nil)
	return stripCodeFences(envelope.Response), nil
}

// Embed returns the vector for a single text via /api/embeddings.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			recordOllamaMetric(ctx, c.embedModel, "embed", 0, 0, err)
			return nil, err
		}
	}

	body, err := json.Marshal(embedRequest{
		Model:  c.embedModel,
		Prompt: text,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.post(ctx, "/api/embeddings", body)
	if err != nil {
		recordOllamaMetric(ctx, c.embedModel, "embed", 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("ollama embed failed with status %d", resp.StatusCode)
		recordOllamaMetric(ctx, c.embedModel, "embed", resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	var envelope embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordOllamaMetric(ctx, c.embedModel, "embed", resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	if len(envelope.Embedding) == 0 {
		err := errors.New("ollama response missing embedding")
		recordOllamaMetric(ctx, c.embedModel, "embed", resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	recordOllamaMetric(ctx, c.embedModel, "embed", resp.StatusCode, time.Since(start), nil)
	return envelope.Embedding, nil
}

// EmbedBatch embeds each text sequentially. Ollama's embeddings endpoint
// takes one prompt per request.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := c.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

// stripCodeFences removes a markdown fence wrapper the model sometimes adds
// around JSON output.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens chan struct{}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type ollamaMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var metricsInit = false
var metrics ollamaMetrics

func ensureMetrics() {
	if metricsInit {
		return
	}
	meter := otel.Meter("github.com/jaassure/proposal-intelligence/ollama")

	requestCount, err := meter.Int64Counter(
		"ai.ollama.request.count",
		metric.WithDescription("Number of Ollama requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.ollama.request.duration",
		metric.WithDescription("Ollama request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.ollama.request.errors",
		metric.WithDescription("Number of failed Ollama requests"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.ollama.ratelimit.wait",
		metric.WithDescription("Time spent waiting on the rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	metrics = ollamaMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	metricsInit = true
}

func recordOllamaMetric(ctx context.Context, model, operation string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "ollama"),
		attribute.String("ai.model", model),
		attribute.String("ai.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordOllamaRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureMetrics()
	if !metricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "ollama"),
		attribute.String("ai.model", model),
	}
	metrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
