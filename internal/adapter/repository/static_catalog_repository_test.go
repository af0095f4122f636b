package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCatalog(t *testing.T) {
	repo := NewStaticCatalogRepository()

	assert.Len(t, repo.ListServices(), 9)
	assert.Len(t, repo.ListPracticeAreas(), 6)

	svc, ok := repo.GetService("company-incorporation")
	require.True(t, ok)
	assert.Equal(t, int64(9999), svc.Price)
	assert.Equal(t, int64(14999), svc.OriginalPrice)
	assert.True(t, svc.Popular)

	_, ok = repo.GetService("nope")
	assert.False(t, ok)

	for _, id := range []string{"accounting", "auditing", "tax", "company-law", "payroll", "finance-advisory"} {
		area, ok := repo.GetPracticeArea(id)
		require.True(t, ok, id)
		assert.Len(t, area.Features, 4)
		assert.Len(t, area.Timeline, 4)
		assert.NotEmpty(t, area.FAQs)
	}
}

func TestStaticCatalogIconsAreValid(t *testing.T) {
	repo := NewStaticCatalogRepository()
	for _, s := range repo.ListServices() {
		assert.True(t, s.Icon.Valid(), s.ID)
	}
	for _, a := range repo.ListPracticeAreas() {
		assert.True(t, a.Icon.Valid(), a.ID)
		for _, f := range a.Features {
			assert.True(t, f.Icon.Valid(), f.Title)
		}
	}
}

func TestListServicesReturnsCopy(t *testing.T) {
	repo := NewStaticCatalogRepository()
	list := repo.ListServices()
	list[0].Title = "mutated"

	svc, _ := repo.GetService(list[0].ID)
	assert.NotEqual(t, "mutated", svc.Title)
}
