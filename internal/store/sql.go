package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// OpenMySQL returns a handle to the MySQL database with the given connection parameters. The
// connection itself is established lazily by the driver.
func OpenMySQL(user, password, host, dbname string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = dbname
	cfg.ParseTime = true
	sqlDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	return sqlDB, nil
}

// SQLStore keeps the collection in the MySQL table 'contacts'. The auto-increment column 'seq'
// preserves the insertion order.
type SQLStore struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed many times.
	insert          *sqlx.NamedStmt
	selectAll       *sqlx.Stmt
	selectWhereId   *sqlx.Stmt
	countWhereEmail *sqlx.Stmt
	deleteWhereId   *sqlx.Stmt
	deleteAll       *sqlx.Stmt
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps the specified sql database and prepares all statements. The database
// argument can be a real database for production use or a mock database within unit tests.
func NewSQLStore(sqlDB *sql.DB) (*SQLStore, error) {
	s := &SQLStore{db: sqlx.NewDb(sqlDB, "mysql")}
	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (id, email, name, subject)
		VALUES (:id, :email, :name, :subject)
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare insert: %w", err)
	}
	s.selectAll, err = s.db.Preparex(`
		SELECT id, email, name, subject FROM contacts ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare select: %w", err)
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT id, email, name, subject FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare select by id: %w", err)
	}
	// BINARY makes the comparison case-sensitive regardless of the column collation.
	s.countWhereEmail, err = s.db.Preparex(`
		SELECT COUNT(*) FROM contacts WHERE BINARY email = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare count by email: %w", err)
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare delete by id: %w", err)
	}
	s.deleteAll, err = s.db.Preparex(`
		DELETE FROM contacts
	`)
	if err != nil {
		return nil, fmt.Errorf("store: prepare delete all: %w", err)
	}
	return s, nil
}

// Close releases the prepared statements and the database handle.
func (s *SQLStore) Close() error {
	for _, stmt := range []*sqlx.Stmt{s.selectAll, s.selectWhereId, s.countWhereEmail, s.deleteWhereId, s.deleteAll} {
		stmt.Close()
	}
	s.insert.Close()
	return s.db.Close()
}

func (s *SQLStore) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	var count int
	if err := s.countWhereEmail.GetContext(ctx, &count, c.Email); err != nil {
		return model.Contact{}, fmt.Errorf("store: count contacts by email: %w", err)
	}
	if count > 0 {
		return model.Contact{}, ErrDuplicateEmail
	}
	c.Id = newID()
	if _, err := s.insert.ExecContext(ctx, &c); err != nil {
		return model.Contact{}, fmt.Errorf("store: insert contact: %w", err)
	}
	return c, nil
}

func (s *SQLStore) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := s.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("store: select contacts: %w", err)
	}
	return contacts, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectWhereId.SelectContext(ctx, &contacts, id); err != nil {
		return model.Contact{}, fmt.Errorf("store: select contact: %w", err)
	}
	if len(contacts) == 0 {
		return model.Contact{}, ErrNotFound
	}
	return contacts[0], nil
}

// Update loads the contact first, so that an update which does not change any value is still
// distinguished from a missing id.
func (s *SQLStore) Update(ctx context.Context, id string, patch imodel.ContactPatch) (model.Contact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	if patch.Empty() {
		return contact, nil
	}

	var args []interface{}
	var columns []string
	if patch.Email != nil {
		args = append(args, *patch.Email)
		columns = append(columns, "email=?")
	}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		columns = append(columns, "name=?")
	}
	if patch.Subject != nil {
		args = append(args, *patch.Subject)
		columns = append(columns, "subject=?")
	}
	args = append(args, id)
	query := "UPDATE contacts SET " + strings.Join(columns, ", ") + " WHERE id=?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return model.Contact{}, fmt.Errorf("store: update contact: %w", err)
	}
	return patch.ApplyTo(contact), nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	result, err := s.deleteWhereId.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("store: delete contact: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete contact: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteAll(ctx context.Context, confirm string) error {
	if err := checkConfirm(confirm); err != nil {
		return err
	}
	if _, err := s.deleteAll.ExecContext(ctx); err != nil {
		return fmt.Errorf("store: delete all contacts: %w", err)
	}
	return nil
}
