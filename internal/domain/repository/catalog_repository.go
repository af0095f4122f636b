package repository

import "gmrportal/internal/domain/entity"

// CatalogRepository serves the firm's fixed offering. It is read-only and
// needs no context.
type CatalogRepository interface {
	ListServices() []entity.CatalogService
	GetService(id string) (entity.CatalogService, bool)
	ListPracticeAreas() []entity.PracticeArea
	GetPracticeArea(id string) (entity.PracticeArea, bool)
}
