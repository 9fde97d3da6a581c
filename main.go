package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/spotcontest/api/cmd/app"
)

// @title        Spot contest API
// @version      1.0
// @description  Winner computation for mark-the-spot competitions.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
