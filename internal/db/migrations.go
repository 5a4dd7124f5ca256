package db

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/goutly/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[A-Za-z0-9_]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

var errMigrationModified = errors.New("applied migration file was modified")

// schemaMigration is one applied file of the migrations directory.
type schemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	Checksum  string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationFile struct {
	Version    int
	Name       string
	Checksum   string
	Statements []string
}

func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	return migrate(database, embeddedmigrations.Files)
}

// migrate applies pending files in version order and returns their names.
// A file that was applied earlier and has changed since stops the run.
func migrate(database *gorm.DB, files fs.FS) ([]string, error) {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("prepare schema_migrations: %w", err)
	}

	pending, err := readMigrationFiles(files)
	if err != nil {
		return nil, err
	}

	var records []schemaMigration
	if err := database.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	checksums := make(map[int]string, len(records))
	for _, record := range records {
		checksums[record.Version] = record.Checksum
	}

	applied := make([]string, 0, len(pending))
	for _, file := range pending {
		if checksum, done := checksums[file.Version]; done {
			if checksum != file.Checksum {
				return applied, fmt.Errorf("%w: %s", errMigrationModified, file.Name)
			}
			continue
		}
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, file)
		}); err != nil {
			return applied, err
		}
		applied = append(applied, file.Name)
	}
	return applied, nil
}

func readMigrationFiles(files fs.FS) ([]migrationFile, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	result := make([]migrationFile, 0, len(names))
	owners := make(map[int]string, len(names))
	for _, name := range names {
		matches := migrationNamePattern.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", name, err)
		}
		if owner, taken := owners[version]; taken {
			return nil, fmt.Errorf("migrations %s and %s share version %d", owner, name, version)
		}
		owners[version] = name

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitSQLStatements(string(body))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", name)
		}
		sum := sha256.Sum256(body)
		result = append(result, migrationFile{
			Version:    version,
			Name:       name,
			Checksum:   hex.EncodeToString(sum[:]),
			Statements: statements,
		})
	}

	slices.SortFunc(result, func(left, right migrationFile) int {
		return cmp.Compare(left.Version, right.Version)
	})
	return result, nil
}

func runMigration(tx *gorm.DB, file migrationFile) error {
	for _, statement := range file.Statements {
		// sqlite has no ADD COLUMN IF NOT EXISTS.
		if matches := addColumnPattern.FindStringSubmatch(statement); matches != nil {
			if tx.Migrator().HasColumn(unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2])) {
				continue
			}
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("migration %s: %q: %w", file.Name, statement, err)
		}
	}

	record := schemaMigration{
		Version:   file.Version,
		Name:      file.Name,
		Checksum:  file.Checksum,
		AppliedAt: time.Now().UTC(),
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", file.Name, err)
	}
	return nil
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for part := range strings.SplitSeq(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
