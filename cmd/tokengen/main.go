package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/contactevin2u/AAHRMS-sub003/internal/config"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/jwt"
)

// tokengen mints an access token against the configured JWT secret,
// for service accounts and local API testing.
func main() {
	userID := flag.String("user", "", "user id claim")
	companyID := flag.String("company", "", "company id claim")
	flag.Parse()

	if *userID == "" || *companyID == "" {
		log.Fatal("both -user and -company are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	jwtSvc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := jwtSvc.GenerateAccessToken(*userID, *companyID)
	if err != nil {
		log.Fatal("Failed to generate token: ", err)
	}

	fmt.Println(token)
	fmt.Println("expires:", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
