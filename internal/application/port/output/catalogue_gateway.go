package output

import (
	"context"

	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// CatalogueGateway is the external feature catalogue provider: given a
// description and target platforms it returns an initial set of essential
// and enhancement features. The engine validates the response shape only,
// never its semantic correctness.
type CatalogueGateway interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*feature.Catalogue, error)
}

// AnalyzeRequest carries the client's app idea to the catalogue provider
type AnalyzeRequest struct {
	Description string
	Platforms   []string
}
