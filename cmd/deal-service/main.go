package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/partnerdesk/deal-service/internal/config"
	httpdelivery "github.com/partnerdesk/deal-service/internal/delivery/http"
	"github.com/partnerdesk/deal-service/internal/delivery/http/handlers"
	"github.com/partnerdesk/deal-service/internal/infrastructure/kafka"
	"github.com/partnerdesk/deal-service/internal/infrastructure/metrics"
	"github.com/partnerdesk/deal-service/internal/infrastructure/migrate"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/repository"
	"github.com/partnerdesk/deal-service/internal/usecase/conflict"
	"github.com/partnerdesk/deal-service/internal/usecase/pricing"
	"github.com/partnerdesk/deal-service/internal/usecase/validation"
	"github.com/partnerdesk/deal-service/internal/usecase/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	dealMetrics := metrics.NewDealMetrics()

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewDefaultKafkaPublisher(brokers)
	defer publisher.Close()

	// Init repositories
	dealRepo := repository.NewDefaultDealRepository(db)
	historyRepo := repository.NewDefaultStatusHistoryRepository(db)
	partnerRepo := repository.NewDefaultPartnerRepository(db)
	productRepo := repository.NewDefaultProductRepository(db)
	eligibilityRepo := repository.NewDefaultEligibilityRuleRepository(db)
	pricingRuleRepo := repository.NewDefaultPricingRuleRepository(db)
	workflowRepo := repository.NewDefaultWorkflowRepository(db)
	approvalRepo := repository.NewDefaultApprovalRepository(db)
	conflictRepo := repository.NewDefaultConflictRepository(db)

	// Init engines
	conflictUc := conflict.NewDefaultConflictUsecase(dealRepo, conflictRepo, dealMetrics, logger)
	pricingUc := pricing.NewDefaultPricingUsecase(productRepo, pricingRuleRepo, dealMetrics, logger)
	validationUc := validation.NewDefaultValidationUsecase(
		partnerRepo,
		productRepo,
		eligibilityRepo,
		pricingUc,
		conflictUc,
		dealMetrics,
		logger,
	)
	workflowUc := workflow.NewDefaultWorkflowUsecase(
		dealRepo,
		partnerRepo,
		workflowRepo,
		approvalRepo,
		historyRepo,
		publisher,
		dealMetrics,
		logger,
	)

	// HTTP delivery
	dealHandler := handlers.NewDealHandler(validationUc, conflictUc)
	pricingHandler := handlers.NewPricingHandler(pricingUc)
	approvalHandler := handlers.NewApprovalHandler(workflowUc)
	router := httpdelivery.NewRouter(dealHandler, pricingHandler, approvalHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("deal service listening on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
