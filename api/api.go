// Package api embeds the OpenAPI document of the HTTP interface.
package api

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error
)

// GetSwagger parses and validates the embedded document. The result is shared
// and must not be modified.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(document)
		if err != nil {
			loadErr = err
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = err
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

// JSON renders the document as JSON for the swagger UI.
func JSON() ([]byte, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
