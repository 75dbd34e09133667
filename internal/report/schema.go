// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const infoSchemaID = "https://github.com/invowk/buildenv/schema/info.schema.json"

//go:embed info.schema.json
var infoSchema []byte

var compileInfoSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(infoSchema))
	if err != nil {
		return nil, fmt.Errorf("internal error: parse info schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(infoSchemaID, doc); err != nil {
		return nil, fmt.Errorf("internal error: add info schema: %w", err)
	}
	return c.Compile(infoSchemaID)
})

// InfoSchema returns the JSON Schema of the Info document.
func InfoSchema() []byte {
	return bytes.Clone(infoSchema)
}

// ValidateInfo checks a JSON-encoded Info document against InfoSchema.
func ValidateInfo(data []byte) error {
	sch, err := compileInfoSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode info document: %w", err)
	}
	return sch.Validate(doc)
}
