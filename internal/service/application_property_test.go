package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"codetogether-api/internal/domain"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/repository"
)

func openPropertyDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, db.AutoMigrate(&domain.User{}, &domain.Project{}, &domain.Position{}, &domain.Application{})
}

// For any position count and number of applicants, approving every application
// leaves exactly min(applicants, count) approved and the rest PENDING.
func TestProperty_ApprovedNeverExceedsCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("approved applications never exceed position count", prop.ForAll(
		func(count, applicants int) bool {
			ctx := context.Background()
			db, err := openPropertyDB()
			if err != nil {
				t.Logf("open db: %v", err)
				return false
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			users := repository.NewUserRepository(db)
			projects := repository.NewProjectRepository(db)
			positions := repository.NewPositionRepository(db)
			applications := repository.NewApplicationRepository(db)
			svc := NewApplicationService(applications, positions, projects, &MockNotificationClient{}, nil, zap.NewNop())

			owner := &domain.User{Email: "owner@example.com", Username: "owner", HashedPassword: "h"}
			if err := users.Create(ctx, owner); err != nil {
				return false
			}
			project := &domain.Project{OwnerID: owner.ID, Name: "p", Description: "d", Difficulty: domain.DifficultyEasy}
			if err := projects.Create(ctx, project); err != nil {
				return false
			}
			position := &domain.Position{ProjectID: project.ID, Name: "dev", Count: count}
			if err := positions.Create(ctx, position); err != nil {
				return false
			}

			var submitted []*dto.ApplicationResponse
			for i := 0; i < applicants; i++ {
				u := &domain.User{Email: fmt.Sprintf("u%d@example.com", i), Username: fmt.Sprintf("u%d", i), HashedPassword: "h"}
				if err := users.Create(ctx, u); err != nil {
					return false
				}
				app, err := svc.Create(ctx, position.ID, &dto.ApplicationRequest{Message: "hi"}, u.ID)
				if err != nil {
					return false
				}
				submitted = append(submitted, app)
			}

			for _, app := range submitted {
				// refusals past the limit are expected
				_, _ = svc.Approve(ctx, app.ID, owner.ID)
			}

			approved, err := applications.CountByPositionAndStatus(ctx, position.ID, domain.ApplicationApproved)
			if err != nil {
				return false
			}
			pending, err := applications.CountByPositionAndStatus(ctx, position.ID, domain.ApplicationPending)
			if err != nil {
				return false
			}

			want := applicants
			if count < want {
				want = count
			}
			return approved == int64(want) && pending == int64(applicants-want)
		},
		gen.IntRange(1, 4),
		gen.IntRange(0, 6),
	))

	properties.TestingRun(t)
}
