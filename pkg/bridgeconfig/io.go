package bridgeconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadBridgeSpec reads a JSON spec file.  Relative paths in the file are
// taken relative to the directory containing it.
func ReadBridgeSpec(filename string) (*BridgeSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var spec BridgeSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", filename, err)
	}
	spec.resolvePaths(filepath.Dir(filename))
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec %s: %w", filename, err)
	}
	return &spec, nil
}

func WriteJSONFile(filename string, spec interface{}) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
