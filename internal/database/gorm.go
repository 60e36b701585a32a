package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/config"
)

// NewGormDB opens the application's gorm connection. TranslateError is on so
// uniqueness violations surface as gorm.ErrDuplicatedKey regardless of the
// underlying driver; the collection and follow services depend on that.
func NewGormDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening gorm connection: %w", err)
	}

	log.Printf("Connected to database %s at %s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)
	return db, nil
}
