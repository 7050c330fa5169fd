package services

import (
	"time"

	"momo-analysis/internal/classifier"
	"momo-analysis/internal/extractor"
	"momo-analysis/internal/models"
)

// ClassifierServiceImpl реализует интерфейс ClassifierService
type ClassifierServiceImpl struct {
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
}

// NewClassifierService создает сервис классификации
func NewClassifierService(cls *classifier.Classifier, ext *extractor.Extractor) ClassifierService {
	return &ClassifierServiceImpl{classifier: cls, extractor: ext}
}

// Classify определяет категорию и извлекает поля, ничего не сохраняя
func (s *ClassifierServiceImpl) Classify(body string) *models.ClassificationResult {
	result := &models.ClassificationResult{Category: models.CategoryUncategorized}

	if rule, ok := s.classifier.Match(body); ok {
		result.Category = rule.Category
		result.Rule = rule.Name
	}
	result.Direction = models.DirectionOf(result.Category)
	result.Fields = s.extractor.Extract(body, result.Category, time.Time{})

	return result
}
