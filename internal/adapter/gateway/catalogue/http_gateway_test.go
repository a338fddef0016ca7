package catalogue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

func TestHTTPGatewayAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req analyzeRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		assert.Equal(t, []string{"iOS"}, req.Platforms)

		json.NewEncoder(w).Encode(analyzeResponseBody{
			AppOverview: "A fitness tracking app",
			EssentialFeatures: []featurePayload{
				{Name: "Workout Log", CostEstimate: "$600", TimeEstimate: "6 days"},
			},
			EnhancementFeatures: []featurePayload{
				{Name: "Social Sharing", CostEstimate: "$300", TimeEstimate: "3 days"},
			},
		})
	}))
	defer server.Close()

	gw, err := NewHTTPGateway(server.URL, "test-key", "gpt-test")
	require.NoError(t, err)

	catalogue, err := gw.Analyze(context.Background(), output.AnalyzeRequest{
		Description: "an app to track workouts and share progress",
		Platforms:   []string{"iOS"},
	})
	require.NoError(t, err)

	require.Len(t, catalogue.Features, 2)
	assert.Equal(t, "essential-1", catalogue.Features[0].ID)
	assert.Equal(t, feature.GroupEssential, catalogue.Features[0].Group)
	assert.True(t, catalogue.Features[0].Selected)
	assert.Equal(t, "enhancement-1", catalogue.Features[1].ID)
	assert.False(t, catalogue.Features[1].Selected)
}

func TestHTTPGatewayRejectsBadResponses(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		gw, err := NewHTTPGateway(server.URL, "", "")
		require.NoError(t, err)
		_, err = gw.Analyze(context.Background(), output.AnalyzeRequest{})
		assert.Error(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"appOverview":""}`))
		}))
		defer server.Close()

		gw, err := NewHTTPGateway(server.URL, "", "")
		require.NoError(t, err)
		_, err = gw.Analyze(context.Background(), output.AnalyzeRequest{})
		assert.Error(t, err)
	})
}

func TestHTTPGatewayRequiresEndpoint(t *testing.T) {
	_, err := NewHTTPGateway("  ", "", "")
	require.Error(t, err)

	var cfgErr *output.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
