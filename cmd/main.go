package main

import (
	"fmt"
	"os"

	"fleet-service/internal/authz"
	"fleet-service/internal/handler"
	"fleet-service/internal/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
	"fleet-service/internal/telemetry"
	"fleet-service/pkg/config"
	"fleet-service/pkg/database"
	"fleet-service/pkg/jwtutil"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	conf, err := config.Load("fleet-service")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.Info("Configuration loaded", conf.LogConfig()...)

	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	if err := database.MigrateModels(&model.Company{}, &model.User{}, &model.Vehicle{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	jwt := jwtutil.NewJWTUtil(&conf.JWT)
	telemetryAPI := telemetry.NewClient(&conf.Telemetry, log)

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	// Services; the company and vehicle components reference each other
	// through narrow interfaces wired here
	vehicleSvc := service.NewVehicleService(vehicleRepo, companyRepo, telemetryAPI, log)
	companySvc := service.NewCompanyService(companyRepo, vehicleSvc, telemetryAPI, log)
	userSvc := service.NewUserService(userRepo, companySvc, log)
	authSvc := service.NewAuthService(userSvc, jwt, log)
	trackingSvc := service.NewTrackingService(companySvc, vehicleSvc, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	companyHandler := handler.NewCompanyHandler(companySvc)
	vehicleHandler := handler.NewVehicleHandler(vehicleSvc)
	userHandler := handler.NewUserHandler(userSvc)
	trackingHandler := handler.NewTrackingHandler(trackingSvc)

	// Route access policy, resolved once
	policy := authz.DefaultPolicy()
	secured := func(operation string) echo.MiddlewareFunc {
		return middleware.Auth(jwt, policy, operation)
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.GET("/health", handler.HealthCheck)

	e.POST("/auth/login", authHandler.Login, secured("auth.login"))
	e.POST("/tracking/webhook", trackingHandler.UpdateVehicleTelemetry, secured("tracking.webhook"))

	e.POST("/companies", companyHandler.CreateCompany, secured("company.create"))
	e.GET("/companies", companyHandler.FindAllCompanies, secured("company.list"))
	e.GET("/companies/:companyRef", companyHandler.FindCompanyByCompanyRef, secured("company.get"))
	e.PUT("/companies/:companyRef", companyHandler.UpdateCompanyByCompanyRef, secured("company.update"))
	e.DELETE("/companies/:companyRef", companyHandler.RemoveCompanyByCompanyRef, secured("company.delete"))

	e.POST("/vehicles", vehicleHandler.CreateVehicle, secured("vehicle.create"))
	e.GET("/vehicles", vehicleHandler.FindAllVehicles, secured("vehicle.list"))
	e.GET("/vehicles/:companyRef", vehicleHandler.FindAllVehiclesByCompanyRef, secured("vehicle.list_by_company"))
	e.GET("/vehicles/:companyRef/:vin", vehicleHandler.FindVehicleByCompanyRefAndVin, secured("vehicle.get"))
	e.PUT("/vehicles/:vin", vehicleHandler.UpdateVehicleByVin, secured("vehicle.update"))
	e.DELETE("/vehicles/:companyRef/:vin", vehicleHandler.RemoveVehicleByVin, secured("vehicle.delete"))

	e.POST("/user", userHandler.CreateUser, secured("user.create"))
	e.GET("/user", userHandler.FindAllUsers, secured("user.list"))
	e.GET("/user/:companyRef", userHandler.FindAllUsersByCompanyRef, secured("user.list_by_company"))
	e.GET("/user/:companyRef/:id", userHandler.FindUserByCompanyRefAndID, secured("user.get"))
	e.PUT("/user/:id", userHandler.UpdateUserByID, secured("user.update"))
	e.DELETE("/user/:id", userHandler.RemoveUserByID, secured("user.delete"))

	log.Info("Starting fleet-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
