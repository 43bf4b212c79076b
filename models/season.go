package models

import "time"

type Season struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProgramID   uint      `gorm:"not null;uniqueIndex:idx_season_program_number" json:"program_id"`
	Program     *Program  `gorm:"foreignKey:ProgramID" json:"-"`
	Number      int       `gorm:"not null;uniqueIndex:idx_season_program_number" json:"number"`
	Year        int       `json:"year"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Episodes    []Episode `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (s *Season) SetProgram(p *Program) {
	s.Program = p
	if p != nil {
		s.ProgramID = p.ID
	}
}
