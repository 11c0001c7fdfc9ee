package postgres

import (
	"log"

	"github.com/partnerdesk/deal-service/internal/config"
	"github.com/partnerdesk/deal-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.DealConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DealDB.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.PartnerModel{},
		&models.ProductModel{},
		&models.ProductAvailabilityModel{},
		&models.EligibilityRuleModel{},
		&models.TerritoryPricingModel{},
		&models.PartnerTierPricingModel{},
		&models.VolumeDiscountModel{},
		&models.PromotionalPricingModel{},
		&models.DealRegistrationPricingModel{},
		&models.EndCustomerModel{},
		&models.DealModel{},
		&models.DealLineModel{},
		&models.DealStatusHistoryModel{},
		&models.ApprovalWorkflowModel{},
		&models.ApprovalStepModel{},
		&models.DealApprovalModel{},
		&models.DealConflictModel{},
	)

	return db
}
