package person

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taibuivan/personapi/internal/platform/database/schema"
	"github.com/taibuivan/personapi/internal/platform/dberr"
)

// GormRepository stores persons through gorm. Its schema is derived from
// the Person mapping by [AutoMigrate].
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate creates or updates the person table from the entity mapping.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Person{}); err != nil {
		return fmt.Errorf("person: gorm AutoMigrate failed: %w", err)
	}
	return nil
}

func (repository *GormRepository) ListPersons(context context.Context, limit, offset int) ([]*Person, int, error) {
	var total int64
	if err := repository.db.WithContext(context).Model(&Person{}).Count(&total).Error; err != nil {
		return nil, 0, dberr.Wrap(err, "count_persons")
	}

	persons := make([]*Person, 0, limit)
	err := repository.db.WithContext(context).
		Order(schema.Person.ID + " ASC").
		Limit(limit).
		Offset(offset).
		Find(&persons).Error
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_persons")
	}

	return persons, int(total), nil
}

func (repository *GormRepository) GetPerson(context context.Context, id int64) (*Person, error) {
	p := &Person{}
	if err := repository.db.WithContext(context).First(p, id).Error; err != nil {
		return nil, dberr.Wrap(err, "get_person")
	}
	return p, nil
}

func (repository *GormRepository) CreatePerson(context context.Context, p *Person) error {
	// Let the store assign the id.
	p.ID = 0
	return dberr.Wrap(repository.db.WithContext(context).Create(p).Error, "create_person")
}

func (repository *GormRepository) UpdatePerson(context context.Context, p *Person) error {
	result := repository.db.WithContext(context).
		Model(&Person{}).
		Where(schema.Person.ID+" = ?", p.ID).
		Updates(map[string]any{
			schema.Person.Name:        p.Name,
			schema.Person.Description: p.Description,
		})
	if result.Error != nil {
		return dberr.Wrap(result.Error, "update_person")
	}

	if result.RowsAffected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *GormRepository) DeletePerson(context context.Context, id int64) error {
	result := repository.db.WithContext(context).Delete(&Person{}, id)
	if result.Error != nil {
		return dberr.Wrap(result.Error, "delete_person")
	}

	if result.RowsAffected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
