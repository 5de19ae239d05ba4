// Package datarecording stores simulation events and run information in a
// SQLite database.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table with given filename
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-type entry into table that already exists
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing names of all tables
	ListTables() []string

	// Flush flushes all the buffered entries into database
	Flush()

	// Close flushes the buffered entries and closes the database
	Close() error
}

const defaultBatchSize = 100000

// columnTypes maps the field kinds an entry may have to SQLite column types.
var columnTypes = map[reflect.Kind]string{
	reflect.Bool:   "BOOLEAN",
	reflect.Int:    "INTEGER",
	reflect.Int64:  "INTEGER",
	reflect.Uint64: "INTEGER",
	reflect.String: "TEXT",
}

// New creates a new DataRecorder that writes to path.sqlite3. If path is
// empty, a unique name is generated.
func New(path string) DataRecorder {
	return newSQLiteWriter(path, defaultBatchSize)
}

func newSQLiteWriter(path string, batchSize int) *sqliteWriter {
	if path == "" {
		path = "vmsim_recording_" + xid.New().String()
	}

	w := &sqliteWriter{
		batchSize: batchSize,
		tables:    make(map[string]*table),
	}

	w.open(path + ".sqlite3")

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	insertSQL  string
	entries    []any
}

// sqliteWriter buffers entries in memory and writes them in batches.
type sqliteWriter struct {
	*sql.DB

	tables     map[string]*table
	batchSize  int
	entryCount int
}

func (t *sqliteWriter) open(filename string) {
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

// columnsOf returns the column definitions of the table that stores entries
// like the sample.
func columnsOf(sampleEntry any) ([]string, error) {
	structType := reflect.TypeOf(sampleEntry)
	if structType == nil || structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entry %T is not a struct", sampleEntry)
	}

	columns := make([]string, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		sqlType, ok := columnTypes[field.Type.Kind()]
		if !field.IsExported() || !ok {
			return nil, fmt.Errorf("field %s of %T cannot be stored",
				field.Name, sampleEntry)
		}

		columns = append(columns, field.Name+" "+sqlType)
	}

	return columns, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	columns, err := columnsOf(sampleEntry)
	if err != nil {
		panic(err)
	}

	t.mustExecute(`CREATE TABLE ` + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);")

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(columns)), ", ")

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		insertSQL: "INSERT INTO " + tableName +
			" VALUES (" + placeholders + ")",
	}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not fit table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(t.tables))
	for name := range t.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush writes every buffered entry in a single transaction.
func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		panic(err)
	}

	for _, table := range t.tables {
		if len(table.entries) == 0 {
			continue
		}

		err = insertAll(tx, table)
		if err != nil {
			_ = tx.Rollback()
			panic(err)
		}

		table.entries = nil
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entryCount = 0
}

func insertAll(tx *sql.Tx, table *table) error {
	stmt, err := tx.Prepare(table.insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range table.entries {
		_, err = stmt.Exec(structs.Values(entry)...)
		if err != nil {
			return fmt.Errorf("%s: %w", table.insertSQL, err)
		}
	}

	return nil
}

func (t *sqliteWriter) Close() error {
	t.Flush()
	return t.DB.Close()
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
