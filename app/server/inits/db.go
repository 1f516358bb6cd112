package inits

import (
	"fmt"

	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/slug"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// Open the connection
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{TranslateError: true}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Migrate
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Seed startup data
	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Post{},
		&models.Comment{},
		&models.RevokedToken{},
	)
}

func initData(db *gorm.DB) (err error) {
	var counter int64

	// Default board for posts created without an explicit one
	if err = db.Model(&models.Board{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get board count: %w", err)
	} else if counter == 0 {
		if err = db.Create(&models.Board{
			Title:       "Unsorted",
			Description: "Everything not filed anywhere else",
			Slug:        slug.Leaf(),
			IsAdmin:     true,
		}).Error; err != nil {
			return fmt.Errorf("failed to create default board: %w", err)
		}
	}

	return nil
}
