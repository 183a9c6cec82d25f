package person

import "github.com/taibuivan/personapi/internal/platform/database/schema"

// Person is a stored person record. ID is assigned by the store on create
// and never changes afterwards.
type Person struct {
	ID          int64  `json:"id"          gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `json:"name"        gorm:"column:name;size:128;not null;index"`
	Description string `json:"description" gorm:"column:description;size:256;not null"`
}

// TableName maps the entity onto the same table the SQL store uses.
func (Person) TableName() string {
	return schema.Person.Table
}

// Payload is a decoded request body. Pointer fields distinguish an absent
// field from an empty one.
type Payload struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Global field names for validation and projection
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

// Length bounds, inclusive, counted in Unicode characters.
const (
	NameMinLen        = 3
	NameMaxLen        = 128
	DescriptionMinLen = 3
	DescriptionMaxLen = 256
)

// FieldDoc describes a field for the API documentation.
type FieldDoc struct {
	Name        string
	Type        string
	Description string
	Example     any
	MinLength   int
	MaxLength   int
}

// FieldDocs lists every Person field in declaration order.
var FieldDocs = []FieldDoc{
	{Name: FieldID, Type: "integer", Description: "The unique id of the person", Example: 1},
	{Name: FieldName, Type: "string", Description: "The name of the person", Example: "John Smith", MinLength: NameMinLen, MaxLength: NameMaxLen},
	{Name: FieldDescription, Type: "string", Description: "A description of the person", Example: "Person created", MinLength: DescriptionMinLen, MaxLength: DescriptionMaxLen},
}
