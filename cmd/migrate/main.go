package main

import (
	"log"
	"os"

	"ai-journal-be/internal/model"
	"ai-journal-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting Authoritative GORM Migration...")

	// 3. AutoMigrate All Models
	models := []interface{}{
		&model.User{},
		&model.Thought{},
		&model.Tag{},
		&model.ThoughtTag{},
		&model.AnalysisJob{},
		&model.ThoughtMood{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: indexes AutoMigrate can't express
	postMigrationSQL := []string{
		// Keyset listing order for thoughts
		`CREATE INDEX IF NOT EXISTS idx_thoughts_uid_created_id ON thoughts (uid, created_at DESC, id DESC) WHERE deleted_at IS NULL;`,

		// Job summary lookups by thought
		`CREATE INDEX IF NOT EXISTS idx_analysis_jobs_thought ON analysis_jobs (uid, thought_id);`,

		// Tag listing order (never-used tags sort as epoch)
		`CREATE INDEX IF NOT EXISTS idx_tags_uid_lastused ON tags (uid, (COALESCE(last_used_at, to_timestamp(0))) DESC, id DESC);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
