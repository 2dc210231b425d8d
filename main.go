package main

import (
	"log"

	"spotsure/config"
	"spotsure/database"
	authRoutes "spotsure/routers/authRoutes"
	imageRoutes "spotsure/routers/imageRoutes"
	serviceRoutes "spotsure/routers/serviceRoutes"
	userRoutes "spotsure/routers/userRoutes"
	"spotsure/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the static pages from the public folder
	app.Static("/", "./public")

	serviceRoutes.SetupServiceRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	imageRoutes.SetupImageRoutes(app)

	// Optional periodic repair recompute of derived rating stats
	utils.InitializeRatingsScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
