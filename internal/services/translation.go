package services

import (
	"print3d-service/internal/i18n"
)

type TranslationServiceInterface interface {
	GetTranslations(lang string) (map[string]string, error)
}

type TranslationService struct {
	catalog i18n.Catalog
}

func NewTranslationService(catalog i18n.Catalog) *TranslationService {
	return &TranslationService{catalog: catalog}
}

// GetTranslations отдаёт плоскую таблицу "ключ -> строка" для языка интерфейса.
func (s *TranslationService) GetTranslations(lang string) (map[string]string, error) {
	language, err := i18n.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	return s.catalog.Table(language).Entries(), nil
}
