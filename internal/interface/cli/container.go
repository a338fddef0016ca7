package cli

import (
	"context"
	"os"

	"github.com/spf13/afero"

	"github.com/aviniti/blueprint/internal/adapter/gateway/catalogue"
	"github.com/aviniti/blueprint/internal/adapter/gateway/storage"
	"github.com/aviniti/blueprint/internal/adapter/renderer"
	"github.com/aviniti/blueprint/internal/app/config"
	"github.com/aviniti/blueprint/internal/application/port/output"
	"github.com/aviniti/blueprint/internal/application/usecase/wizard"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
	"github.com/aviniti/blueprint/internal/domain/repository"
	"github.com/aviniti/blueprint/internal/infrastructure/persistence/file"
	"github.com/aviniti/blueprint/internal/infrastructure/persistence/sqlite"
)

// container assembles the wizard's collaborators from configuration.
// Optional pieces (intake records, the analysis service) degrade to nil;
// the wizard handles their absence.
type container struct {
	wizard   *wizard.Wizard
	sessions repository.SessionRepository
	records  *sqlite.ClientRecordRepositoryImpl
}

func buildContainer(ctx context.Context, cfg *config.AppConfig) (*container, error) {
	fs := afero.NewOsFs()
	log := GetLogger()

	sessions := file.NewSessionStore(fs, cfg.Home)

	var records *sqlite.ClientRecordRepositoryImpl
	if cfg.DBPath != "" {
		if err := fs.MkdirAll(cfg.Home, 0o755); err == nil {
			var err error
			records, err = sqlite.NewClientRecordRepository(cfg.DBPath)
			if err != nil {
				log.Warn("intake records disabled: %v", err)
				records = nil
			}
		}
	}

	var analysisGateway output.CatalogueGateway
	if cfg.CatalogueEndpoint != "" {
		gw, err := catalogue.NewHTTPGateway(cfg.CatalogueEndpoint, cfg.CatalogueAPIKey, cfg.CatalogueModel)
		if err != nil {
			log.Warn("analysis service disabled: %v", err)
		} else {
			analysisGateway = gw
		}
	}

	var store output.StorageGateway
	if cfg.Storage == config.StorageS3 {
		s3Store, err := storage.NewS3StorageGateway(ctx, storage.S3Config{
			Bucket: cfg.S3Bucket,
			Prefix: cfg.S3Prefix,
			Region: cfg.S3Region,
		})
		if err != nil {
			log.Warn("S3 storage unavailable, using local storage: %v", err)
			store = storage.NewLocalStorageGateway(fs, cfg.Home)
		} else {
			store = s3Store
		}
	} else {
		store = storage.NewLocalStorageGateway(fs, cfg.Home)
	}

	rules := feature.DefaultRules()
	if cfg.RulesPath != "" {
		data, err := os.ReadFile(cfg.RulesPath)
		if err != nil {
			log.Warn("dependency rules file unreadable, using defaults: %v", err)
		} else if loaded, err := feature.LoadRules(data); err != nil {
			log.Warn("dependency rules file invalid, using defaults: %v", err)
		} else {
			rules = loaded
		}
	}

	deps := wizard.Deps{
		Sessions:        sessions,
		Catalogue:       analysisGateway,
		Fallback:        catalogue.NewFallbackGateway(),
		Renderer:        renderer.NewPDFRenderer(),
		Storage:         store,
		Rules:           rules,
		BackgroundDelay: cfg.BackgroundDelay,
	}
	if records != nil {
		deps.Records = records
	}

	return &container{
		wizard:   wizard.New(deps),
		sessions: sessions,
		records:  records,
	}, nil
}

// Close releases held resources
func (c *container) Close() {
	if c.records != nil {
		c.records.Close()
	}
}
