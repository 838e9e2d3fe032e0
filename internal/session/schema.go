package session

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(snapshotSchemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("session: parse embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot.schema.json", doc); err != nil {
		return nil, fmt.Errorf("session: load schema: %w", err)
	}
	schema, err := compiler.Compile("snapshot.schema.json")
	if err != nil {
		return nil, fmt.Errorf("session: compile schema: %w", err)
	}
	return schema, nil
})

// ValidateBytes checks raw snapshot JSON against the embedded schema. A
// validation failure is treated exactly like a parse failure by the store's
// backup fallback chain.
func ValidateBytes(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("session: snapshot is empty")
	}
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("session: parse snapshot json: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("session: snapshot schema validation: %w", err)
	}
	return nil
}
