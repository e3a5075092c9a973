package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/treedoctor/treedoctor-api/internal/badge"
)

// LoadBadgeCatalog returns the catalog at path, or the embedded catalog when
// path is empty. The catalog is validated while loading.
func LoadBadgeCatalog(path string) (*badge.Catalog, error) {
	if path == "" {
		catalog := badge.DefaultCatalog()
		slog.Info(LogMsgCatalogLoaded,
			"source", CatalogSourceEmbedded,
			"version", catalog.Version(),
			"badges", catalog.Len())
		return catalog, nil
	}

	catalog, err := badge.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded,
		"source", path,
		"version", catalog.Version(),
		"badges", catalog.Len())
	return catalog, nil
}
