package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Programs  []Program `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT;" json:"programs,omitempty"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category has no name", ErrValidation)
	}
	return nil
}
