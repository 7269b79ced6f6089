package main

import (
	"log"

	"github.com/6Elmas9/KlasNet/app/config"
	"github.com/6Elmas9/KlasNet/app/database"
)

func main() {
	log.Println("Running database migrations...")

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migrations completed successfully!")
}
