package person

import "context"

// Repository defines the data access contract. Implementations return
// dberr.ErrNotFound when the referenced id does not exist.
type Repository interface {
	ListPersons(context context.Context, limit, offset int) ([]*Person, int, error)
	GetPerson(context context.Context, id int64) (*Person, error)
	// CreatePerson inserts p and sets p.ID to the store-assigned id.
	CreatePerson(context context.Context, p *Person) error
	// UpdatePerson overwrites name and description of the row with p.ID.
	UpdatePerson(context context.Context, p *Person) error
	DeletePerson(context context.Context, id int64) error
}
