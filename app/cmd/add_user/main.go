package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/6Elmas9/KlasNet/app/config"
	"github.com/6Elmas9/KlasNet/app/database"
	"github.com/6Elmas9/KlasNet/app/models"
)

func main() {
	firstName := flag.String("first-name", "", "user first name")
	lastName := flag.String("last-name", "", "user last name")
	email := flag.String("email", "", "user email")
	password := flag.String("password", "", "user password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -first-name NAME -last-name NAME -email EMAIL -password PASSWORD")
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
