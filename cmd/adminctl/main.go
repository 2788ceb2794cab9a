// Command adminctl seeds or resets the dashboard admin password.
//
//	adminctl -password <new-password> [-config config.yml]
package main

import (
	"errors"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sevatrust/core/internal/config"
	"github.com/sevatrust/core/internal/database"
	"github.com/sevatrust/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	password := flag.String("password", "", "New admin password")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var admin models.AdminModel
	err = db.First(&admin).Error
	switch {
	case err == nil:
		if err := db.Model(&admin).Update("password_hash", string(hash)).Error; err != nil {
			log.Fatalf("failed to update admin password: %v", err)
		}
		log.Println("admin password updated")
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin.PasswordHash = string(hash)
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("failed to create admin account: %v", err)
		}
		log.Println("admin account created")
	default:
		log.Fatalf("failed to query admin account: %v", err)
	}
}
