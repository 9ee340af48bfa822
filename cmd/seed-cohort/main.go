package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devroute/bootcamp-backend/internal/config"
	"github.com/devroute/bootcamp-backend/internal/database"
	"github.com/devroute/bootcamp-backend/internal/logger"
	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo cohort with 20 student accounts. All accounts share the
// password "student123"; intended for local development only.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	cohortRepo := repository.NewCohortRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	cohortName := "Batch 12"
	courseName := "Backend Engineering"

	fmt.Printf("=== Seeding cohort %q with 20 students ===\n", cohortName)

	var cohortID int
	err = pool.QueryRow(ctx,
		`SELECT id FROM cohorts WHERE name = $1 AND course_name = $2`,
		cohortName, courseName,
	).Scan(&cohortID)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Fatal().Err(err).Msg("Failed to check existing cohort")
		}
		fmt.Println("Cohort not found. Creating it...")
		cohort := &model.Cohort{
			Name:       cohortName,
			CourseName: courseName,
			StartsOn:   time.Now().AddDate(0, 0, -7),
			EndsOn:     time.Now().AddDate(0, 3, 0),
		}
		if err := cohortRepo.Create(ctx, cohort); err != nil {
			log.Fatal().Err(err).Msg("Failed to create cohort")
		}
		cohortID = cohort.ID
		fmt.Printf("Created cohort with ID: %d\n", cohortID)
	} else {
		fmt.Printf("Found existing cohort with ID: %d\n", cohortID)
	}

	names := []string{
		"Alice Morgan", "Ben Carter", "Chloe Nguyen", "Daniel Reyes", "Emma Fischer",
		"Felix Olsen", "Grace Ito", "Hassan Ali", "Ivy Kowalski", "Jonas Berg",
		"Kara Dudek", "Liam O'Brien", "Mina Park", "Noah Silva", "Olga Petrov",
		"Pavel Novak", "Quinn Torres", "Rosa Lindqvist", "Sami Haddad", "Tara Singh",
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("student123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	created := 0
	for i, name := range names {
		email := fmt.Sprintf("%s%d@student.example.com",
			strings.ToLower(strings.Split(name, " ")[0]), i+1)

		student := &model.User{
			Email:        email,
			Name:         name,
			PasswordHash: string(hash),
			Role:         model.RoleStudent,
			CohortID:     &cohortID,
		}
		if err := userRepo.Create(ctx, student); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("Skipping student (probably exists)")
			continue
		}
		created++
	}

	fmt.Printf("Done. Created %d students in cohort %d.\n", created, cohortID)
}
