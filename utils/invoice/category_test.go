package invoice

import (
	"testing"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	items := func(descs ...string) []dto.LineItem {
		out := make([]dto.LineItem, len(descs))
		for i, d := range descs {
			out[i] = dto.LineItem{Description: d}
		}
		return out
	}

	tests := []struct {
		name   string
		vendor string
		items  []dto.LineItem
		want   dto.Category
	}{
		{"grocery vendor", "WALMART SUPERCENTER", nil, dto.CategoryMeals},
		{"electronics item", "Best Buy", items("Dell Laptop 15in"), dto.CategoryEquipment},
		{"furniture item", "Staples", items("Ergonomic office chair"), dto.CategoryOfficeSupplies},
		{"office vendor", "Office Depot", nil, dto.CategoryOfficeSupplies},
		{"transport", "Uber Trip", nil, dto.CategoryTravel},
		{"lodging", "Hilton Hotel", nil, dto.CategoryTravel},
		{"fuel", "Shell", items("Fuel regular"), dto.CategoryAutoTruck},
		{"priority order", "Walmart", items("Gaming laptop"), dto.CategoryMeals},
		{"keywords match at word start", "Shape Inc", nil, dto.CategoryOther},
		{"unknown vendor", UnknownVendor, nil, dto.CategoryOther},
		{"empty", "", nil, dto.CategoryOther},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Categorize(tt.vendor, tt.items)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}
