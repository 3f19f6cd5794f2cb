// Package store owns persistence for the quiz engine: sqlite for
// single-node setups, postgres for shared ones. Repos return domain
// types and accept an optional transaction handle so the engine can
// compose them inside one atomic update.
package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edusprint/quizengine/internal/logger"
)

const postgresDialect = "postgres"

// Store wraps the gorm handle and the repo set bound to it.
type Store struct {
	db    *gorm.DB
	log   *logger.Logger
	locks bool

	Questions QuestionRepo
	Topics    TopicRepo
	Progress  ProgressRepo
	Mastery   MasteryRepo
	Attempts  AttemptRepo
}

// TxRunner is the slice of Store the engine needs to run atomic updates.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Open connects to databaseURL, migrates the schema and wires the repo
// set. A postgres:// or postgresql:// URL selects the postgres driver;
// anything else is treated as a sqlite file path.
func Open(databaseURL string, log *logger.Logger) (*Store, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dial = postgres.Open(databaseURL)
	} else {
		dial = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&Topic{},
		&Question{},
		&UserTopicProgress{},
		&MasteryRecord{},
		&AttemptEvent{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	s := &Store{
		db: db,
		// SELECT ... FOR UPDATE only exists on postgres; sqlite
		// serializes writers at the file level instead.
		locks: dial.Name() == postgresDialect,
		log:   log,
	}
	s.Questions = newQuestionRepo(s)
	s.Topics = newTopicRepo(s)
	s.Progress = newProgressRepo(s)
	s.Mastery = newMasteryRepo(s)
	s.Attempts = newAttemptRepo(s)
	return s, nil
}

// Transaction runs fn inside a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// handle resolves the DB to run a query on: the supplied transaction
// when present, the root handle otherwise.
func (s *Store) handle(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

// IsConflict reports whether err is a retryable concurrency failure:
// a postgres serialization or deadlock abort, or sqlite's busy lock.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 40P01") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
