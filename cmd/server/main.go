package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/abhaydcp99/Vault-X/internal/adapter/http/controller"
	"github.com/abhaydcp99/Vault-X/internal/adapter/http/middleware"
	"github.com/abhaydcp99/Vault-X/internal/adapter/http/router"
	"github.com/abhaydcp99/Vault-X/internal/adapter/repository/postgres"
	"github.com/abhaydcp99/Vault-X/internal/config"
	"github.com/abhaydcp99/Vault-X/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	customerRepo := postgres.NewCustomerRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)

	customerService := services.NewCustomerService(customerRepo)
	transactionService := services.NewTransactionService(transactionRepo, customerRepo)
	employeeService := services.NewEmployeeService(employeeRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)

	mux := router.New(
		controller.NewCustomerController(customerService),
		controller.NewTransactionController(transactionService),
		controller.NewEmployeeController(employeeService),
		authMiddleware,
	)

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("serve http: %v", err)
	}
}
