package repo

import (
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewUserProfileRepo(db *gorm.DB) *UserProfileRepo {
	return &UserProfileRepo{
		Repository: orz.NewRepository[models.UserProfile, string](db),
	}
}

type UserProfileRepo struct {
	orz.Repository[models.UserProfile, string]
}
