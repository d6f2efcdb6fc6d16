package initializers

import (
	"log"

	"github.com/bikinisbytelly/bikinis-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.CustomOrder{},
		&models.Newsletter{},
		&models.Contact{},
		&models.Admin{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database synced successfully.")
}
