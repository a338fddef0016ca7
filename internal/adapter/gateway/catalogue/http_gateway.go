// Package catalogue provides feature catalogue providers: an HTTP-backed
// analysis service and a deterministic fallback.
package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

const defaultTimeout = 60 * time.Second

// HTTPGateway calls an external analysis endpoint that turns an app
// description into a feature catalogue. The response shape is validated;
// its content is trusted as-is.
type HTTPGateway struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewHTTPGateway creates a gateway for the given endpoint. The API key and
// model are forwarded to the provider; either may be empty.
func NewHTTPGateway(endpoint, apiKey, model string) (*HTTPGateway, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, &output.ConfigurationError{
			Component: "catalogue",
			Reason:    "analysis endpoint is not configured",
		}
	}
	return &HTTPGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

type analyzeRequestBody struct {
	Description string   `json:"description"`
	Platforms   []string `json:"platforms"`
	Model       string   `json:"model,omitempty"`
}

type analyzeResponseBody struct {
	AppOverview         string           `json:"appOverview"`
	EssentialFeatures   []featurePayload `json:"essentialFeatures"`
	EnhancementFeatures []featurePayload `json:"enhancementFeatures"`
}

type featurePayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Purpose      string `json:"purpose"`
	Category     string `json:"category"`
	CostEstimate string `json:"costEstimate"`
	TimeEstimate string `json:"timeEstimate"`
}

// Analyze submits the app idea and maps the provider response into a
// catalogue. Essential features come back pre-selected, enhancements do
// not.
func (g *HTTPGateway) Analyze(ctx context.Context, req output.AnalyzeRequest) (*feature.Catalogue, error) {
	body, err := json.Marshal(analyzeRequestBody{
		Description: req.Description,
		Platforms:   req.Platforms,
		Model:       g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analysis service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed analyzeResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	if parsed.AppOverview == "" || len(parsed.EssentialFeatures) == 0 {
		return nil, fmt.Errorf("analysis response is missing required fields")
	}

	catalogue := &feature.Catalogue{AppOverview: parsed.AppOverview}
	for i, p := range parsed.EssentialFeatures {
		catalogue.Append(toFeature(p, fmt.Sprintf("essential-%d", i+1), feature.GroupEssential, true))
	}
	for i, p := range parsed.EnhancementFeatures {
		catalogue.Append(toFeature(p, fmt.Sprintf("enhancement-%d", i+1), feature.GroupEnhancement, false))
	}
	return catalogue, nil
}

func toFeature(p featurePayload, id string, group feature.Group, selected bool) feature.Feature {
	return feature.Feature{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		Purpose:      p.Purpose,
		Category:     p.Category,
		CostEstimate: p.CostEstimate,
		TimeEstimate: p.TimeEstimate,
		Group:        group,
		Selected:     selected,
	}
}
