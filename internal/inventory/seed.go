package inventory

import (
	"time"

	"StockKeeper/internal/model"
)

// Seed returns the built-in starter dataset. It is used on first run and
// whenever the persisted inventory document cannot be decoded.
func Seed() []model.InventoryItem {
	now := time.Now()
	return []model.InventoryItem{
		{
			ID:          "1",
			Name:        "Mực In Canon 2900 (Cartridge 303)",
			Category:    "Mực In",
			Quantity:    45,
			Unit:        "hộp",
			MinStock:    10,
			Location:    "Kệ A1",
			LastUpdated: now,
			Condition:   model.ConditionNew,
		},
		{
			ID:          "2",
			Name:        "Drum Máy Photo Ricoh MP 5002",
			Category:    "Linh Kiện",
			Quantity:    12,
			Unit:        "cái",
			MinStock:    5,
			Location:    "Tủ B2",
			LastUpdated: now,
			Condition:   model.ConditionNew,
		},
		{
			ID:          "3",
			Name:        "Gạt Mực Lớn HP 1020",
			Category:    "Linh Kiện",
			Quantity:    150,
			Unit:        "cái",
			MinStock:    30,
			Location:    "Kệ C1",
			LastUpdated: now,
			Condition:   model.ConditionNew,
		},
		{
			ID:          "4",
			Name:        "Rulo Sấy Canon 3300 (Upper)",
			Category:    "Nhiệt & Sấy",
			Quantity:    8,
			Unit:        "cái",
			MinStock:    3,
			Location:    "Tủ Kỹ Thuật",
			LastUpdated: now,
			Condition:   model.ConditionUsed,
		},
		{
			ID:          "5",
			Name:        "Web Dầu Toshiba e-Studio 855",
			Category:    "Vật Tư Tiêu Hao",
			Quantity:    6,
			Unit:        "cuộn",
			MinStock:    5,
			Location:    "Kho D",
			LastUpdated: now,
			Condition:   model.ConditionNew,
		},
		{
			ID:          "6",
			Name:        "Gạt Từ Nhỏ Canon 2900",
			Category:    "Linh Kiện",
			Quantity:    200,
			Unit:        "cái",
			MinStock:    50,
			Location:    "Kệ C1",
			LastUpdated: now,
			Condition:   model.ConditionNew,
		},
	}
}
