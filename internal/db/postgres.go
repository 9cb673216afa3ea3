package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/types"
	"github.com/insurely/brochure-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "brochure", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Product{},
		&types.PlanVariant{},
		&types.EligibilityMaster{},
		&types.VariantEligibilityLink{},
		&types.MinPremiumRule{},
		&types.BrochureSummary{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, ddl := range []string{
		`ALTER TABLE "plan_variants"
		 ADD CONSTRAINT "fk_plan_variants_product_id"
		 FOREIGN KEY ("product_id")
		 REFERENCES "products"("product_id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "variant_eligibility_link"
		 ADD CONSTRAINT "fk_variant_eligibility_link_variant_id"
		 FOREIGN KEY ("variant_id")
		 REFERENCES "plan_variants"("variant_id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "variant_eligibility_link"
		 ADD CONSTRAINT "fk_variant_eligibility_link_eligibility_id"
		 FOREIGN KEY ("eligibility_id")
		 REFERENCES "eligibility_master"("eligibility_id")
		 ON DELETE RESTRICT`,
		`ALTER TABLE "min_premium_rules"
		 ADD CONSTRAINT "fk_min_premium_rules_product_id"
		 FOREIGN KEY ("product_id")
		 REFERENCES "products"("product_id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "brochure_summaries"
		 ADD CONSTRAINT "fk_brochure_summaries_product_id"
		 FOREIGN KEY ("product_id")
		 REFERENCES "products"("product_id")
		 ON DELETE CASCADE`,
	} {
		if err := s.db.Exec(ddl).Error; err != nil {
			s.log.Warn("Failed to add foreign key constraint", "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
