package repositories

import (
	"context"

	"praxisnote.app/configs"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IExamTemplateRepository serves the seeded exam form catalog.
type IExamTemplateRepository interface {
	FindAllOrdered(ctx context.Context) ([]models.ExamTemplate, error)
}

type ExamTemplateRepository struct {
	db *gorm.DB
}

func NewExamTemplateRepository() IExamTemplateRepository {
	return &ExamTemplateRepository{db: configs.GetDB()}
}

func (r *ExamTemplateRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *ExamTemplateRepository) FindAllOrdered(ctx context.Context) ([]models.ExamTemplate, error) {
	var fields []models.ExamTemplate
	err := r.getDB(ctx).Order("position ASC").Find(&fields).Error
	if err != nil {
		configslog.Log.Error("ExamTemplateRepository.FindAllOrdered: DB error", zap.Error(err))
		return nil, err
	}
	return fields, nil
}

var _ IExamTemplateRepository = (*ExamTemplateRepository)(nil)
