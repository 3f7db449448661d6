package postgres

import (
	"context"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *roleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Seed inserts the reference roles if they are missing.
func (r *roleRepository) Seed(ctx context.Context) error {
	roles := []domain.Role{
		{
			ID:          uuid.New(),
			Name:        domain.RoleMember,
			Permissions: datatypes.JSON([]byte(`["circle:read","project:read","project:write","review:write"]`)),
		},
		{
			ID:          uuid.New(),
			Name:        domain.RoleAdmin,
			Permissions: datatypes.JSON([]byte(`["*"]`)),
			IsAdmin:     true,
		},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roles).Error
}
