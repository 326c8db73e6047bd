package repositories

import (
	"bytes"
	"context"
	"deconfliction-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNoFile = errors.New("file flight repository: path is empty")

// FileFlightRepository serves a flight schedule from a JSON or YAML file,
// re-reading it on every call.
type FileFlightRepository struct {
	Path string
}

func NewFileFlightRepository(path string) *FileFlightRepository {
	return &FileFlightRepository{Path: path}
}

func (r *FileFlightRepository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, errNoFile
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}

	flights, err := ReadFlightsFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

// ReadFlightsFile decodes a list of flights. Files ending in .yaml or .yml
// are read as YAML, anything else as JSON.
func ReadFlightsFile(path string) ([]domain.Flight, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flights %q: %w", path, err)
	}

	flights, err := DecodeFlights(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("read flights %q: %w", path, err)
	}
	return flights, nil
}

// DecodeFlights parses a flight list in the format named by ext.
func DecodeFlights(b []byte, ext string) ([]domain.Flight, error) {
	var flights []domain.Flight

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &flights); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&flights); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}
