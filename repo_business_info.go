package tenantauth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BusinessProfiles stores the per-tenant business descriptors collected at
// registration. Profiles hang off the identity record by user id.
type BusinessProfiles interface {
	repository.Repository[*BusinessProfile]

	GetByUserID(ctx context.Context, userID uuid.UUID) (*BusinessProfile, error)
	GetByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*BusinessProfile, error)
}

type businessProfiles struct {
	repository.Repository[*BusinessProfile]
	db *bun.DB
}

var _ BusinessProfiles = (*businessProfiles)(nil)

func NewBusinessProfilesRepository(db *bun.DB) BusinessProfiles {
	repo := repository.NewRepository[*BusinessProfile](db, repository.ModelHandlers[*BusinessProfile]{
		NewRecord: func() *BusinessProfile { return &BusinessProfile{} },
		GetID: func(b *BusinessProfile) uuid.UUID {
			if b == nil {
				return uuid.Nil
			}
			return b.ID
		},
		SetID: func(b *BusinessProfile, id uuid.UUID) {
			if b != nil {
				b.ID = id
			}
		},
		GetIdentifier: func() string {
			return "user_id"
		},
	})

	return &businessProfiles{
		Repository: repo,
		db:         db,
	}
}

func (a *businessProfiles) Create(ctx context.Context, record *BusinessProfile, criteria ...repository.InsertCriteria) (*BusinessProfile, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *businessProfiles) CreateTx(ctx context.Context, tx bun.IDB, record *BusinessProfile, criteria ...repository.InsertCriteria) (*BusinessProfile, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *businessProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*BusinessProfile, error) {
	return a.GetByUserIDTx(ctx, a.db, userID)
}

func (a *businessProfiles) GetByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*BusinessProfile, error) {
	record := &BusinessProfile{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"user_id": userID.String(),
				})
		}
		return nil, err
	}

	return record, nil
}
