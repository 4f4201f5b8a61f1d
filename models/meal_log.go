package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealLog is the nutrition snapshot of one food item. Rows are written once
// by the ingestion pipeline and never updated afterwards; the only mutation
// is a user-initiated delete.
//
// Calories is an integer (rounded from the source float); the macro fields
// are rounded to two decimals, with missing source values stored as 0.
type MealLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	BatchID uuid.UUID `gorm:"type:uuid;index" json:"batch_id"`

	FoodName    string  `gorm:"not null" json:"food_name"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`

	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`

	ImageURI *string   `json:"image_uri"`
	LoggedAt time.Time `gorm:"index;not null" json:"logged_at"`

	CreatedAt time.Time `json:"-"`
}

func (MealLog) TableName() string { return "meal_logs" }

func (m *MealLog) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
