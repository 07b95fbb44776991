package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings holds per-user display preferences. Timezone is an IANA
// identifier; an empty value means the configured default applies.
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Language   string `gorm:"size:10;default:'en'" json:"language"`
	Timezone   string `gorm:"size:64" json:"timezone"`
	Currency   string `gorm:"size:10" json:"currency"`
	DateFormat string `gorm:"size:20;default:'DD/MM/YYYY'" json:"date_format"`

	// Printing
	AutoPrintReceipt bool `gorm:"default:false" json:"auto_print_receipt"`
	AutoPrintKOT     bool `gorm:"default:false" json:"auto_print_kot"`

	Theme       string `gorm:"size:20;default:'light'" json:"theme"`
	CompactMode bool   `gorm:"default:false" json:"compact_mode"`
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (UserSettings) TableName() string {
	return "user_settings"
}
