package person

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/personapi/internal/platform/database/schema"
	"github.com/taibuivan/personapi/internal/platform/dberr"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository stores persons through a pgx pool. The table is
// created by the schema bootstrap before the repository is used.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListPersons(context context.Context, limit, offset int) ([]*Person, int, error) {
	countQuery, countArgs, err := countPersonsQuery()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_count_persons")
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_persons")
	}

	query, args, err := listPersonsQuery(limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_list_persons")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_persons")
	}
	defer rows.Close()

	persons := make([]*Person, 0, limit)
	for rows.Next() {
		p := &Person{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_person")
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_persons")
	}

	return persons, total, nil
}

func (repository *PostgresRepository) GetPerson(context context.Context, id int64) (*Person, error) {
	query, args, err := getPersonQuery(id)
	if err != nil {
		return nil, dberr.Wrap(err, "build_get_person")
	}

	p := &Person{}
	if err := repository.db.QueryRow(context, query, args...).Scan(&p.ID, &p.Name, &p.Description); err != nil {
		return nil, dberr.Wrap(err, "get_person")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePerson(context context.Context, p *Person) error {
	query, args, err := insertPersonQuery(p)
	if err != nil {
		return dberr.Wrap(err, "build_create_person")
	}

	err = repository.db.QueryRow(context, query, args...).Scan(&p.ID)
	return dberr.Wrap(err, "create_person")
}

func (repository *PostgresRepository) UpdatePerson(context context.Context, p *Person) error {
	query, args, err := updatePersonQuery(p)
	if err != nil {
		return dberr.Wrap(err, "build_update_person")
	}

	var updatedID int64
	err = repository.db.QueryRow(context, query, args...).Scan(&updatedID)
	return dberr.Wrap(err, "update_person")
}

func (repository *PostgresRepository) DeletePerson(context context.Context, id int64) error {
	query, args, err := deletePersonQuery(id)
	if err != nil {
		return dberr.Wrap(err, "build_delete_person")
	}

	cmd, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "delete_person")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Query Builders

func countPersonsQuery() (string, []any, error) {
	return psql.Select("count(*)").From(schema.Person.Table).ToSql()
}

func listPersonsQuery(limit, offset int) (string, []any, error) {
	return psql.Select(schema.Person.Columns()...).
		From(schema.Person.Table).
		OrderBy(schema.Person.ID + " ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func getPersonQuery(id int64) (string, []any, error) {
	return psql.Select(schema.Person.Columns()...).
		From(schema.Person.Table).
		Where(sq.Eq{schema.Person.ID: id}).
		ToSql()
}

func insertPersonQuery(p *Person) (string, []any, error) {
	return psql.Insert(schema.Person.Table).
		Columns(schema.Person.Name, schema.Person.Description).
		Values(p.Name, p.Description).
		Suffix("RETURNING " + schema.Person.ID).
		ToSql()
}

// updatePersonQuery never touches the id column.
func updatePersonQuery(p *Person) (string, []any, error) {
	return psql.Update(schema.Person.Table).
		Set(schema.Person.Name, p.Name).
		Set(schema.Person.Description, p.Description).
		Where(sq.Eq{schema.Person.ID: p.ID}).
		Suffix("RETURNING " + schema.Person.ID).
		ToSql()
}

func deletePersonQuery(id int64) (string, []any, error) {
	return psql.Delete(schema.Person.Table).
		Where(sq.Eq{schema.Person.ID: id}).
		ToSql()
}
