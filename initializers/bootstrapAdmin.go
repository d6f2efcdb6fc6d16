package initializers

import (
	"log"
	"os"

	"github.com/bikinisbytelly/bikinis-api/models"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapAdmin creates the single admin account on first startup. It is
// safe to call on every boot: an existing admin table is left alone.
func BootstrapAdmin() {
	var count int64
	if err := DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to check admin table: ", err)
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set for first startup")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password: ", err)
	}

	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create bootstrap admin: ", err)
	}
	log.Println("Bootstrap admin created:", username)
}
