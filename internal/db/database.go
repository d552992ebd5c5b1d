package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
	"github.com/inneratlas/inneratlas-backend/internal/utils"
)

type DatabaseService struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

// NewDatabaseService connects per DB_DRIVER: "postgres" (default) or
// "sqlite" for local development.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")
	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

	var (
		gdb *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "inneratlas.db", log)
		serviceLog.Info("Connecting to SQLite...", "path", path)
		gdb, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		driver = "postgres"
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "inneratlas", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("Connecting to Postgres...", "host", host, "database", name)
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	if driver == "postgres" {
		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
			return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
		}
	}

	return &DatabaseService{db: gdb, driver: driver, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.System{},
		&types.Part{},
		&types.Relationship{},
		&types.JournalEntry{},
		&types.GuidedSession{},
		&types.SessionMessage{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != "postgres" {
		return nil
	}
	s.log.Info("Configuring foreign key relationships...")
	constraints := []struct {
		name string
		stmt string
	}{
		{
			name: "fk_user_tokens_user_id",
			stmt: `ALTER TABLE "user_tokens" ADD CONSTRAINT "fk_user_tokens_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_ifs_systems_user_id",
			stmt: `ALTER TABLE "ifs_systems" ADD CONSTRAINT "fk_ifs_systems_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_parts_system_id",
			stmt: `ALTER TABLE "parts" ADD CONSTRAINT "fk_parts_system_id" FOREIGN KEY ("system_id") REFERENCES "ifs_systems"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_relationships_system_id",
			stmt: `ALTER TABLE "relationships" ADD CONSTRAINT "fk_relationships_system_id" FOREIGN KEY ("system_id") REFERENCES "ifs_systems"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_relationships_source_id",
			stmt: `ALTER TABLE "relationships" ADD CONSTRAINT "fk_relationships_source_id" FOREIGN KEY ("source_id") REFERENCES "parts"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_relationships_target_id",
			stmt: `ALTER TABLE "relationships" ADD CONSTRAINT "fk_relationships_target_id" FOREIGN KEY ("target_id") REFERENCES "parts"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_journals_system_id",
			stmt: `ALTER TABLE "journals" ADD CONSTRAINT "fk_journals_system_id" FOREIGN KEY ("system_id") REFERENCES "ifs_systems"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_journals_part_id",
			stmt: `ALTER TABLE "journals" ADD CONSTRAINT "fk_journals_part_id" FOREIGN KEY ("part_id") REFERENCES "parts"("id") ON DELETE SET NULL`,
		},
		{
			name: "fk_guided_sessions_system_id",
			stmt: `ALTER TABLE "guided_sessions" ADD CONSTRAINT "fk_guided_sessions_system_id" FOREIGN KEY ("system_id") REFERENCES "ifs_systems"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_session_messages_session_id",
			stmt: `ALTER TABLE "session_messages" ADD CONSTRAINT "fk_session_messages_session_id" FOREIGN KEY ("session_id") REFERENCES "guided_sessions"("id") ON DELETE CASCADE`,
		},
	}
	for _, c := range constraints {
		var count int64
		s.db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, c.name).Scan(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Exec(c.stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}
