// Package seed imports todos from a YAML file.
//
// The file format is:
//
//	todos:
//	  - body: buy milk
//	  - body: file taxes
//	    completed: true
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/todo/internal/storage"
)

// Item is one todo in a seed file.
type Item struct {
	Body      string `yaml:"body"`
	Completed bool   `yaml:"completed"`
}

type file struct {
	Todos []Item `yaml:"todos"`
}

// Parse decodes a seed document. Unknown keys and empty bodies are errors.
func Parse(r io.Reader) ([]Item, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}
	for i, it := range f.Todos {
		if strings.TrimSpace(it.Body) == "" {
			return nil, fmt.Errorf("todo %d: body is empty", i+1)
		}
	}
	return f.Todos, nil
}

// ParseFile reads and parses the seed file at path.
func ParseFile(path string) ([]Item, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return Parse(f)
}

// Creator is the subset of the todo service the importer needs.
type Creator interface {
	Create(ctx context.Context, body string) (*storage.Todo, error)
	Complete(ctx context.Context, id string) error
}

// Import creates every item in order and returns how many were written.
// It stops at the first failure.
func Import(ctx context.Context, svc Creator, items []Item) (int, error) {
	for i, it := range items {
		todo, err := svc.Create(ctx, it.Body)
		if err != nil {
			return i, fmt.Errorf("importing todo %d: %w", i+1, err)
		}
		if it.Completed {
			if err := svc.Complete(ctx, todo.ID); err != nil {
				return i, fmt.Errorf("completing imported todo %d: %w", i+1, err)
			}
		}
	}
	return len(items), nil
}
