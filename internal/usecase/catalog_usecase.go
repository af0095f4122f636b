package usecase

import (
	"github.com/shopspring/decimal"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
)

type CatalogUseCase struct {
	catalog    repository.CatalogRepository
	gstPercent int64
	currency   string
}

func NewCatalogUseCase(catalog repository.CatalogRepository, gstPercent int64, currency string) *CatalogUseCase {
	return &CatalogUseCase{
		catalog:    catalog,
		gstPercent: gstPercent,
		currency:   currency,
	}
}

// Quote is the checkout breakdown for one pricing entry, in whole rupees.
type Quote struct {
	ServiceID     string `json:"service_id"`
	Title         string `json:"title"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Discount      int64  `json:"discount"`
	GSTPercent    int64  `json:"gst_percent"`
	GST           int64  `json:"gst"`
	Total         int64  `json:"total"`
	Currency      string `json:"currency"`
}

// ListServices filters by category; "" and "all" return everything.
func (uc *CatalogUseCase) ListServices(category string) []entity.CatalogService {
	services := uc.catalog.ListServices()
	if category == "" || category == "all" {
		return services
	}

	out := []entity.CatalogService{}
	for _, svc := range services {
		if svc.Category == category {
			out = append(out, svc)
		}
	}
	return out
}

// ListCategories returns the distinct categories in catalog order.
func (uc *CatalogUseCase) ListCategories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, svc := range uc.catalog.ListServices() {
		if !seen[svc.Category] {
			seen[svc.Category] = true
			out = append(out, svc.Category)
		}
	}
	return out
}

func (uc *CatalogUseCase) GetService(id string) (*entity.CatalogService, error) {
	svc, ok := uc.catalog.GetService(id)
	if !ok {
		return nil, errors.NotFound("Service", nil)
	}
	return &svc, nil
}

func (uc *CatalogUseCase) ListPracticeAreas() []entity.PracticeArea {
	return uc.catalog.ListPracticeAreas()
}

func (uc *CatalogUseCase) GetPracticeArea(id string) (*entity.PracticeArea, error) {
	area, ok := uc.catalog.GetPracticeArea(id)
	if !ok {
		return nil, errors.NotFound("Service", nil)
	}
	return &area, nil
}

// ResolveName finds a requestable service in either the pricing catalog or
// the practice areas.
func (uc *CatalogUseCase) ResolveName(id string) (string, bool) {
	if svc, ok := uc.catalog.GetService(id); ok {
		return svc.Title, true
	}
	if area, ok := uc.catalog.GetPracticeArea(id); ok {
		return area.Title, true
	}
	return "", false
}

func (uc *CatalogUseCase) Quote(id string) (*Quote, error) {
	svc, err := uc.GetService(id)
	if err != nil {
		return nil, err
	}

	price := decimal.NewFromInt(svc.Price)
	gst := price.Mul(decimal.NewFromInt(uc.gstPercent)).Div(decimal.NewFromInt(100)).Round(0)

	discount := int64(0)
	if svc.OriginalPrice > svc.Price {
		discount = svc.OriginalPrice - svc.Price
	}

	return &Quote{
		ServiceID:     svc.ID,
		Title:         svc.Title,
		Price:         svc.Price,
		OriginalPrice: svc.OriginalPrice,
		Discount:      discount,
		GSTPercent:    uc.gstPercent,
		GST:           gst.IntPart(),
		Total:         price.Add(gst).IntPart(),
		Currency:      uc.currency,
	}, nil
}
