// Package gemini implements the domain's StationSuggester and
// AreaDescriber ports against the Generative Language API. The
// endpoint is treated as a best-effort heuristic: every response is
// parsed and validated before use, and callers own the fallback when
// anything about the exchange is off.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/geo"
	"github.com/hydsafe/jurisdictiond/internal/observability"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the Gemini generateContent endpoint. It implements
// domain.StationSuggester and domain.AreaDescriber.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	candidates string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Gemini client. The station list becomes the
// candidate context sent with every suggestion prompt. rps bounds the
// outbound request rate.
func NewClient(apiKey, model string, timeout time.Duration, rps float64, stations []domain.Station, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		candidates: candidateList(stations),
		logger:     logger,
		metrics:    metrics,
	}
}

// SuggestStations asks the model for the most relevant station names
// for a coordinate pair (coords non-nil) or a typed query. The
// outbound request constrains the response to a JSON array of strings;
// a reply that does not parse as one is an error. One attempt only.
func (c *Client) SuggestStations(ctx context.Context, query string, coords *geo.Point) ([]string, error) {
	var prompt string
	if coords != nil {
		prompt = fmt.Sprintf(`The user is at Coordinates (%.6f, %.6f) in Hyderabad.
CORE TASK: Find the exact Police Station jurisdiction for this specific point.
PRECISION RULE: Prioritize sub-locality stations (e.g. 'Mailardevpally PS') over larger administrative ones (e.g. 'Rajendranagar PS') if the user is within the sub-locality's known bounds.
VERIFICATION: Double-check that the chosen station is the actual legal jurisdiction for this residential area.
Available Stations: [%s].
Return ONLY a JSON array of the top 3 most relevant Station Names in order of proximity.`, coords.Lat, coords.Lng, c.candidates)
	} else {
		prompt = fmt.Sprintf(`Find the police stations matching query: %q.
Available Stations: [%s].
Return ONLY a JSON array of the top 3 Station Names.`, query, c.candidates)
	}

	text, err := c.generate(ctx, "suggest", prompt, true)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of strings: %w", err)
	}
	return names, nil
}

// DescribeArea asks the model for the most specific sub-locality name
// at a coordinate. The reply is free text.
func (c *Client) DescribeArea(ctx context.Context, lat, lng float64) (string, error) {
	prompt := fmt.Sprintf(`The user is at Coordinates (%.6f, %.6f) in Hyderabad.
STRICT REQUIREMENT: Identify the most specific, localized neighborhood, colony, or sub-locality name.
DO NOT return a broad Mandal name (like 'Rajendranagar') if a specific locality (like 'Mailardevpally', 'Shastripuram', or 'Katedan') is identifiable.
DOUBLE-CHECK your geographic database for exact residential area names at this coordinate.
Return ONLY the specific name as a single string.`, lat, lng)

	text, err := c.generate(ctx, "describe", prompt, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// generate performs one rate-limited generateContent call and returns
// the first candidate's text. constrainJSON switches on the
// array-of-strings response schema.
func (c *Client) generate(ctx context.Context, method, prompt string, constrainJSON bool) (string, error) {
	start := time.Now()
	text, err := c.doGenerate(ctx, prompt, constrainJSON)
	c.metrics.InferenceDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.InferenceRequests.WithLabelValues(method, "error").Inc()
		c.logger.Warn("inference request failed", "method", method, "error", err)
		return "", err
	}

	c.metrics.InferenceRequests.WithLabelValues(method, "success").Inc()
	return text, nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string, constrainJSON bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if constrainJSON {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type:  "ARRAY",
				Items: &schema{Type: "STRING"},
			},
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: status %d: %s", resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// candidateList renders the registry as "Name (Commissionerate)"
// entries for prompt context.
func candidateList(stations []domain.Station) string {
	entries := make([]string, 0, len(stations))
	for _, s := range stations {
		entries = append(entries, fmt.Sprintf("%s (%s)", s.Name, s.Commissionerate))
	}
	return strings.Join(entries, ", ")
}

// Gemini API request/response types.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type  string  `json:"type"`
	Items *schema `json:"items,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
