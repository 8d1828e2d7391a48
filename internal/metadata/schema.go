package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed frontmatter.schema.json
var schemaData []byte

const schemaName = "frontmatter.schema.json"

var (
	frontMatterSchema *jsonschema.Schema
	compileOnce       sync.Once
	compileErr        error
)

// compileSchema compiles the embedded front matter schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal front matter schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("add front matter schema resource: %w", err)
			return
		}

		frontMatterSchema, err = compiler.Compile(schemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile front matter schema: %w", err)
		}
	})
	return compileErr
}

// validate checks a decoded YAML document against the front matter schema.
// The document goes through JSON first so the validator sees JSON value types.
func validate(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("front matter is not representable as JSON: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("front matter is not representable as JSON: %w", err)
	}

	if err := frontMatterSchema.Validate(v); err != nil {
		return fmt.Errorf("front matter validation failed: %w", err)
	}
	return nil
}
