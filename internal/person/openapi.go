package person

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/taibuivan/personapi/internal/platform/openapi"
)

// Schema names registered by [Describe].
const (
	schemaCreateRequest = "PersonCreateRequest"
	schemaCreate        = "PersonCreate"
	schemaList          = "PersonList"
	schemaListPage      = "PersonListPage"
	schemaView          = "PersonView"
	schemaUpdate        = "PersonUpdate"
	schemaError         = "Error"
)

// Describe registers the person schemas and routes, mounted at basePath, on doc.
func Describe(doc *openapi3.T, basePath string) {
	create := profiles[ViewCreate]

	createRequest := openapi.AddSchema(doc, schemaCreateRequest, viewSchema(create.InputFields, create.RequiredFields))
	created := openapi.AddSchema(doc, schemaCreate, viewSchema(create.EmitFields, nil))
	listed := openapi.AddSchema(doc, schemaList, viewSchema(profiles[ViewList].EmitFields, profiles[ViewList].RequiredFields))
	viewed := openapi.AddSchema(doc, schemaView, viewSchema(profiles[ViewView].EmitFields, profiles[ViewView].RequiredFields))
	updated := openapi.AddSchema(doc, schemaUpdate, viewSchema(profiles[ViewUpdate].EmitFields, profiles[ViewUpdate].RequiredFields))
	page := openapi.AddSchema(doc, schemaListPage, pageSchema(listed))
	failure := openapi.AddSchema(doc, schemaError, errorSchema())

	idParam := &openapi3.ParameterRef{Value: openapi3.NewPathParameter(FieldID).
		WithDescription(fieldDoc(FieldID).Description).
		WithSchema(openapi3.NewInt64Schema().WithMin(1))}
	itemPath := basePath + "/{id}"

	doc.AddOperation(basePath, http.MethodGet, &openapi3.Operation{
		Summary:     "List persons",
		OperationID: "listPersons",
		Tags:        []string{resourceName},
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
			{Value: openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("A page of persons", page)),
		),
	})

	doc.AddOperation(basePath, http.MethodPost, &openapi3.Operation{
		Summary:     "Create a person",
		OperationID: "createPerson",
		Tags:        []string{resourceName},
		RequestBody: jsonBody(createRequest),
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusCreated, jsonResponse("Person created", dataOf(created))),
			openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Validation failed", failure)),
		),
	})

	doc.AddOperation(itemPath, http.MethodGet, &openapi3.Operation{
		Summary:     "View a person",
		OperationID: "getPerson",
		Tags:        []string{resourceName},
		Parameters:  openapi3.Parameters{idParam},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("The person", dataOf(viewed))),
			openapi3.WithStatus(http.StatusNotFound, jsonResponse("Person not found", failure)),
		),
	})

	doc.AddOperation(itemPath, http.MethodPut, &openapi3.Operation{
		Summary:     "Update a person",
		OperationID: "updatePerson",
		Tags:        []string{resourceName},
		Parameters:  openapi3.Parameters{idParam},
		RequestBody: jsonBody(updated),
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("Person updated", dataOf(updated))),
			openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Validation failed", failure)),
			openapi3.WithStatus(http.StatusNotFound, jsonResponse("Person not found", failure)),
		),
	})

	doc.AddOperation(itemPath, http.MethodDelete, &openapi3.Operation{
		Summary:     "Delete a person",
		OperationID: "deletePerson",
		Tags:        []string{resourceName},
		Parameters:  openapi3.Parameters{idParam},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusNoContent, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Person deleted"),
			}),
			openapi3.WithStatus(http.StatusNotFound, jsonResponse("Person not found", failure)),
		),
	})
}

// viewSchema builds an object schema over fields, marking required ones.
func viewSchema(fields, required []string) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()

	for _, field := range fields {
		schema.WithProperty(field, propertySchema(fieldDoc(field)))
	}

	var present []string
	for _, field := range required {
		if _, ok := schema.Properties[field]; ok {
			present = append(present, field)
		}
	}
	if len(present) > 0 {
		schema.WithRequired(present)
	}

	return schema
}

func propertySchema(doc FieldDoc) *openapi3.Schema {
	var property *openapi3.Schema
	switch {
	case doc.Name == FieldID:
		property = openapi3.NewInt64Schema().WithMin(1)
	case doc.Type == "integer":
		property = openapi3.NewIntegerSchema()
	default:
		property = openapi3.NewStringSchema()
	}

	if doc.MinLength > 0 {
		property.WithMinLength(int64(doc.MinLength))
	}
	if doc.MaxLength > 0 {
		property.WithMaxLength(int64(doc.MaxLength))
	}
	property.Description = doc.Description
	property.Example = doc.Example
	return property
}

func pageSchema(item *openapi3.SchemaRef) *openapi3.Schema {
	integer := openapi3.NewIntegerSchema()
	meta := openapi3.NewObjectSchema().
		WithProperty("page", integer).
		WithProperty("limit", integer).
		WithProperty("total", integer).
		WithProperty("total_pages", integer)

	data := openapi3.NewArraySchema()
	data.Items = item

	return openapi3.NewObjectSchema().
		WithProperty("data", data).
		WithProperty("meta", meta)
}

func errorSchema() *openapi3.Schema {
	text := openapi3.NewStringSchema()
	detail := openapi3.NewObjectSchema().
		WithProperty("field", text).
		WithProperty("rule", text).
		WithProperty("message", text)

	return openapi3.NewObjectSchema().
		WithProperty("error", text).
		WithProperty("code", text).
		WithProperty("details", openapi3.NewArraySchema().WithItems(detail)).
		WithRequired([]string{"error", "code"})
}

// dataOf wraps a schema reference in the success envelope.
func dataOf(ref *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: openapi3.NewObjectSchema().WithPropertyRef("data", ref)}
}

func jsonResponse(description string, ref *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(ref)}
}

func jsonBody(ref *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref)}
}

func fieldDoc(name string) FieldDoc {
	for _, doc := range FieldDocs {
		if doc.Name == name {
			return doc
		}
	}
	return FieldDoc{Name: name}
}
