// Package directory resolves spoken employee names to delivery handles.
// The mapping lives in a single SSM parameter as a JSON object, loaded
// once at startup; the skill's working set is one office.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Directory is an immutable name -> handle lookup.
type Directory struct {
	handles map[string]string
}

// Load fetches and decodes the directory parameter, e.g.
// {"Kevin":"@kevin","Colin":"@khaullen"}.
func Load(ctx context.Context, ps Getter, paramName string) (*Directory, error) {
	if ps == nil {
		return nil, errors.New("directory: param getter must not be nil")
	}
	raw, err := ps.GetParameter(ctx, paramName)
	if err != nil {
		return nil, fmt.Errorf("directory: load %q: %w", paramName, err)
	}

	var entries map[string]string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("directory: decode %q: %w", paramName, err)
	}

	handles := make(map[string]string, len(entries))
	for name, handle := range entries {
		handles[normalize(name)] = handle
	}
	return &Directory{handles: handles}, nil
}

// Lookup returns the handle for a spoken name. Matching is
// case-insensitive since speech recognition is loose about casing.
func (d *Directory) Lookup(name string) (string, bool) {
	handle, ok := d.handles[normalize(name)]
	return handle, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
