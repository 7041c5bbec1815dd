package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

// File reads a catalog from a YAML or JSON file on disk.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) ([]model.Product, error) {
	_ = ctx
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".json":
		return decodeJSON(data)
	default:
		return decodeYAML(data)
	}
}

func decodeYAML(data []byte) ([]model.Product, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return decodeRecords(doc.Products)
}

// decodeJSON accepts either {"products": [...]} or a bare array.
func decodeJSON(data []byte) ([]model.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode catalog json: %w", err)
		}
		return decodeRecords(records)
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	return decodeRecords(doc.Products)
}
