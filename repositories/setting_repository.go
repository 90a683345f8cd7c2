package repositories

import (
	"context"
	"errors"

	"praxisnote.app/configs"
	"praxisnote.app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ISettingRepository reads and writes app-level key/value settings.
type ISettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Unset(ctx context.Context, key string) error
}

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository() ISettingRepository {
	return &SettingRepository{db: configs.GetDB()}
}

func (r *SettingRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting models.Setting
	err := r.getDB(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

// Set upserts the value under key.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

func (r *SettingRepository) Unset(ctx context.Context, key string) error {
	return r.getDB(ctx).Where("key = ?", key).Delete(&models.Setting{}).Error
}

var _ ISettingRepository = (*SettingRepository)(nil)
