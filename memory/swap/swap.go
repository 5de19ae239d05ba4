// Package swap provides a backing store that keeps swapped-out pages in a
// SQLite database.
package swap

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/vmsim/mem/vm"
)

const wordSize = 8

// SQLiteStore is a memory.BackingStore that writes every flushed page into a
// SQLite table.
type SQLiteStore struct {
	*sql.DB

	path       string
	loadStmt   *sql.Stmt
	storeStmt  *sql.Stmt
	deleteStmt *sql.Stmt
}

// Open opens the database at the path, creating the page table if needed. If
// the path is empty, a new database named after a unique ID is created in the
// working directory.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "vmsim_swap_" + xid.New().String() + ".sqlite3"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open swap database %s: %w", path, err)
	}

	s := &SQLiteStore{DB: db, path: path}

	err = s.init()
	if err != nil {
		db.Close()
		return nil, err
	}

	atexit.Register(func() { s.Close() })

	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.Exec(`CREATE TABLE IF NOT EXISTS pages (
	vpn INTEGER PRIMARY KEY,
	data BLOB NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("create page table: %w", err)
	}

	s.loadStmt, err = s.Prepare(`SELECT data FROM pages WHERE vpn = ?`)
	if err != nil {
		return fmt.Errorf("prepare page load: %w", err)
	}

	s.storeStmt, err = s.Prepare(
		`INSERT OR REPLACE INTO pages (vpn, data) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare page store: %w", err)
	}

	s.deleteStmt, err = s.Prepare(`DELETE FROM pages WHERE vpn = ?`)
	if err != nil {
		return fmt.Errorf("prepare page delete: %w", err)
	}

	return nil
}

// Path returns the file that holds the database.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Load returns the content of the page.
func (s *SQLiteStore) Load(vpn uint64) ([]vm.Word, bool) {
	var data []byte

	err := s.loadStmt.QueryRow(int64(vpn)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}

	if err != nil {
		panic(fmt.Errorf("load page %d: %w", vpn, err))
	}

	return decode(data), true
}

// Store saves the content of the page, replacing the previous content.
func (s *SQLiteStore) Store(vpn uint64, words []vm.Word) {
	_, err := s.storeStmt.Exec(int64(vpn), encode(words))
	if err != nil {
		panic(fmt.Errorf("store page %d: %w", vpn, err))
	}
}

// Delete removes the page from the table.
func (s *SQLiteStore) Delete(vpn uint64) {
	_, err := s.deleteStmt.Exec(int64(vpn))
	if err != nil {
		panic(fmt.Errorf("delete page %d: %w", vpn, err))
	}
}

// NumPages returns the number of pages saved.
func (s *SQLiteStore) NumPages() int {
	var n int

	err := s.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&n)
	if err != nil {
		panic(err)
	}

	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.loadStmt != nil {
		s.loadStmt.Close()
	}

	if s.storeStmt != nil {
		s.storeStmt.Close()
	}

	if s.deleteStmt != nil {
		s.deleteStmt.Close()
	}

	return s.DB.Close()
}

// Remove closes the database and deletes its file.
func (s *SQLiteStore) Remove() error {
	err := s.Close()
	if err != nil {
		return err
	}

	return os.Remove(s.path)
}

func encode(words []vm.Word) []byte {
	data := make([]byte, len(words)*wordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint64(data[i*wordSize:], uint64(w))
	}

	return data
}

func decode(data []byte) []vm.Word {
	words := make([]vm.Word, len(data)/wordSize)
	for i := range words {
		words[i] = vm.Word(binary.LittleEndian.Uint64(data[i*wordSize:]))
	}

	return words
}
