package database

// Scripts can be kept in any of the SQL databases below, so that a hub can store a program under a
// name and run it later.

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/tim-hardcastle/lair/source/text"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQL Server": "sqlserver", "SQLite": "sqlite"}

	// The column type for the text of a script.
	sourceTypes = map[string]string{"firebirdsql": "BLOB SUB_TYPE TEXT", "oracle": "CLOB",
		"sqlserver": "nvarchar(max)"}

	ErrNotFound = errors.New("no such script")
	ErrChecksum = errors.New("script checksum mismatch")
)

// DriverName accepts either the name of a database, as given by GetSortedDrivers, or the name of its
// Go driver.
func DriverName(driver string) (string, error) {
	if name, ok := drivers[driver]; ok {
		return name, nil
	}
	for _, name := range drivers {
		if strings.EqualFold(name, driver) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown SQL driver %s", text.Emph(driver))
}

func GetdB(driver, dsn string) (*sql.DB, error) {
	name, e := DriverName(driver)
	if e != nil {
		return nil, e
	}
	sqlObj, e := sql.Open(name, dsn)
	if e != nil {
		return nil, e
	}
	if name == "sqlite" {
		// Each connection to an in-memory database would get a database of its own.
		sqlObj.SetMaxOpenConns(1)
	}
	if e := sqlObj.Ping(); e != nil {
		sqlObj.Close()
		return nil, e
	}
	return sqlObj, nil
}

func GetDriverOptions() string {
	result := "The following SQL drivers are available: \n\n"
	for _, v := range GetSortedDrivers() {
		result = result + text.BULLET + v + "\n"
	}
	return result
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// Checksum is the hex BLAKE2b-256 digest of a script.
func Checksum(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// A Store keeps scripts in the _Scripts table.
type Store struct {
	db     *sql.DB
	driver string
}

func NewStore(db *sql.DB, driver string) (*Store, error) {
	name, e := DriverName(driver)
	if e != nil {
		return nil, e
	}
	s := &Store{db: db, driver: name}
	if _, e := db.Exec("SELECT COUNT(*) FROM _Scripts"); e == nil {
		return s, nil
	}
	sourceType, ok := sourceTypes[name]
	if !ok {
		sourceType = "text"
	}
	query := `CREATE TABLE _Scripts (
    name varchar(64) NOT NULL,
    source ` + sourceType + `,
    checksum varchar(64),
PRIMARY KEY (name))`
	if _, e := db.Exec(query); e != nil {
		return nil, e
	}
	return s, nil
}

// Save stores the script under the name, replacing any script already stored there.
func (s *Store) Save(name, source string) error {
	tx, e := s.db.Begin()
	if e != nil {
		return e
	}
	defer tx.Rollback()
	if _, e := tx.Exec("DELETE FROM _Scripts WHERE name = "+s.placeholder(1), name); e != nil {
		return e
	}
	query := "INSERT INTO _Scripts(name, source, checksum) VALUES (" +
		s.placeholder(1) + ", " + s.placeholder(2) + ", " + s.placeholder(3) + ")"
	if _, e := tx.Exec(query, name, source, Checksum(source)); e != nil {
		return e
	}
	return tx.Commit()
}

// Load fetches a script, checking it against the checksum it was saved with.
func (s *Store) Load(name string) (string, error) {
	var source, checksum string
	row := s.db.QueryRow("SELECT source, checksum FROM _Scripts WHERE name = "+s.placeholder(1), name)
	if e := row.Scan(&source, &checksum); e != nil {
		if errors.Is(e, sql.ErrNoRows) {
			return "", fmt.Errorf("%w %s", ErrNotFound, text.Emph(name))
		}
		return "", e
	}
	if Checksum(source) != checksum {
		return "", fmt.Errorf("%w for %s", ErrChecksum, text.Emph(name))
	}
	return source, nil
}

// List returns the names of the stored scripts in alphabetical order.
func (s *Store) List() ([]string, error) {
	rows, e := s.db.Query("SELECT name FROM _Scripts")
	if e != nil {
		return nil, e
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if e := rows.Scan(&name); e != nil {
			return nil, e
		}
		names = append(names, name)
	}
	if e := rows.Err(); e != nil {
		return nil, e
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Delete(name string) error {
	result, e := s.db.Exec("DELETE FROM _Scripts WHERE name = "+s.placeholder(1), name)
	if e != nil {
		return e
	}
	if n, e := result.RowsAffected(); e == nil && n == 0 {
		return fmt.Errorf("%w %s", ErrNotFound, text.Emph(name))
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) placeholder(n int) string {
	switch s.driver {
	case "postgres":
		return "$" + strconv.Itoa(n)
	case "oracle":
		return ":" + strconv.Itoa(n)
	case "sqlserver":
		return "@p" + strconv.Itoa(n)
	}
	return "?"
}
