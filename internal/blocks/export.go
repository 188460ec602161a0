// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the full block catalog to path as YAML, in the same
// id-descending order ListBlocks returns.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	all, err := s.ListBlocks(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full block catalog to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	all, err := s.ListBlocks(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
