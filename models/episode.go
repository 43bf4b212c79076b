package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Episode keeps ProgramID next to SeasonID so the slug can be unique
// per program.
type Episode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SeasonID  uint      `gorm:"not null;index" json:"season_id"`
	Season    *Season   `gorm:"foreignKey:SeasonID" json:"-"`
	ProgramID uint      `gorm:"not null;uniqueIndex:idx_episode_program_slug" json:"program_id"`
	Number    int       `gorm:"not null;default:1" json:"number"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex:idx_episode_program_slug" json:"slug"`
	Summary   string    `gorm:"type:text" json:"summary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Comments  []Comment `gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (e *Episode) SetSeason(s *Season) {
	e.Season = s
	if s != nil {
		e.SeasonID = s.ID
		e.ProgramID = s.ProgramID
	}
}

func (e *Episode) BeforeSave(tx *gorm.DB) error {
	if e.Slug == "" {
		return fmt.Errorf("%w: episode %q has no slug", ErrValidation, e.Title)
	}
	return nil
}
