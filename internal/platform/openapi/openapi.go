// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package openapi builds and serves the OpenAPI 3 document of the service.

The document is an [openapi3.T]. Its info block comes from build metadata;
domain packages register their own schemas and operations on it before it
is mounted. Mounting encodes the document once and validates the encoded
form, so a broken document fails startup instead of reaching clients.

Endpoints:

  - GET /api-docs/openapi.json  The document.
  - GET /swagger/*              Swagger UI pointing at the document.
*/
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/taibuivan/personapi/internal/platform/buildinfo"
)

const (
	// Version is the OpenAPI specification version emitted.
	Version = "3.0.3"

	// SpecPath is where the JSON document is served.
	SpecPath = "/api-docs/openapi.json"

	// UIPath is the Swagger UI prefix.
	UIPath = "/swagger"

	componentSchemaPrefix = "#/components/schemas/"
)

// # Construction

// New returns an empty document whose info block is filled from build metadata.
// Contact and license are omitted when the metadata leaves them blank.
func New(info buildinfo.Info) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Name,
			Description: info.Description,
			Version:     info.Version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	if info.DeveloperName != "" || info.DeveloperEmail != "" {
		doc.Info.Contact = &openapi3.Contact{Name: info.DeveloperName, Email: info.DeveloperEmail}
	}
	if info.LicenseName != "" {
		doc.Info.License = &openapi3.License{Name: info.LicenseName, URL: info.LicenseURL}
	}

	return doc
}

// AddSchema registers schema as a named component and returns a reference to it.
// The reference carries the schema value so the document validates without a loader.
func AddSchema(doc *openapi3.T, name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	if doc.Components == nil {
		doc.Components = &openapi3.Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = openapi3.Schemas{}
	}

	doc.Components.Schemas[name] = openapi3.NewSchemaRef("", schema)
	return openapi3.NewSchemaRef(componentSchemaPrefix+name, schema)
}

// # Serving

// Encode marshals doc and validates the encoded form.
//
// Validation runs on the reloaded document, which is exactly what clients
// will read, so numeric examples are checked as JSON numbers.
func Encode(ctx context.Context, doc *openapi3.T) ([]byte, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}

	loaded, err := openapi3.NewLoader().LoadFromData(encoded)
	if err != nil {
		return nil, fmt.Errorf("openapi: reload document: %w", err)
	}
	if err := loaded.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}

	return encoded, nil
}

// Handler serves doc as JSON. The document is encoded once.
func Handler(doc *openapi3.T) (http.HandlerFunc, error) {
	encoded, err := Encode(context.Background(), doc)
	if err != nil {
		return nil, err
	}

	return func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = writer.Write(encoded)
	}, nil
}

// Mount registers the document and the Swagger UI on router.
func Mount(router chi.Router, doc *openapi3.T) error {
	specHandler, err := Handler(doc)
	if err != nil {
		return err
	}

	router.Get(SpecPath, specHandler)
	router.Get(UIPath, func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, UIPath+"/index.html", http.StatusFound)
	})
	router.Get(UIPath+"/*", httpSwagger.Handler(httpSwagger.URL(SpecPath)))
	return nil
}
