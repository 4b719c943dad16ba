package db

import (
	"log"
	"os"
	"sonar/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=sonar port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate runs auto-migration plus the indexes gorm tags cannot express.
// Shared with the test setup so test schemas match production.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Follow{},
		&models.Block{},
		&models.Hashtag{},
		&models.Ping{},
	)
	if err != nil {
		return err
	}

	// Usernames are unique case-insensitively. The write path also pre-checks
	// with a LOWER() lookup; this index closes the race between two concurrent
	// registrations differing only in case.
	return gdb.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))",
	).Error
}
