package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Program struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Slug       string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Summary    string    `gorm:"type:text;not null" json:"summary"`
	Poster     string    `gorm:"type:text" json:"poster,omitempty"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	OwnerID    *uint     `gorm:"index" json:"owner_id"` // có thể null
	Owner      *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Actors  []*Actor `gorm:"many2many:program_actors" json:"actors,omitempty"`
	Seasons []Season `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE;" json:"-"`
}

// ProgramActor is a row of the program_actors junction table.
type ProgramActor struct {
	ProgramID uint `gorm:"primaryKey"`
	ActorID   uint `gorm:"primaryKey"`
}

func (ProgramActor) TableName() string {
	return "program_actors"
}

func (p *Program) SetCategory(c *Category) {
	p.Category = c
	if c != nil {
		p.CategoryID = c.ID
	} else {
		p.CategoryID = 0
	}
}

func (p *Program) SetOwner(u *User) {
	p.Owner = u
	if u != nil {
		id := u.ID
		p.OwnerID = &id
	} else {
		p.OwnerID = nil
	}
}

// IsOwnedBy reports whether u is the program's owner. A program without
// owner is owned by nobody.
func (p *Program) IsOwnedBy(u *User) bool {
	return u != nil && p.OwnerID != nil && *p.OwnerID == u.ID
}

func (p *Program) HasActor(a *Actor) bool {
	for _, existing := range p.Actors {
		if existing == a || (a.ID != 0 && existing.ID == a.ID) {
			return true
		}
	}
	return false
}

// AddActor adds a to the program and registers the program on a.
func (p *Program) AddActor(a *Actor) {
	if p.HasActor(a) {
		return
	}
	p.Actors = append(p.Actors, a)
	a.AddProgram(p)
}

// RemoveActor removes a from the program and the program from a.
func (p *Program) RemoveActor(a *Actor) {
	if !p.HasActor(a) {
		return
	}
	out := p.Actors[:0]
	for _, existing := range p.Actors {
		if existing == a || (a.ID != 0 && existing.ID == a.ID) {
			continue
		}
		out = append(out, existing)
	}
	p.Actors = out
	a.RemoveProgram(p)
}

// ActorIDs returns the ids of the attached actors in insertion order.
func (p *Program) ActorIDs() []uint {
	ids := make([]uint, 0, len(p.Actors))
	for _, a := range p.Actors {
		ids = append(ids, a.ID)
	}
	return ids
}

func (p *Program) BeforeSave(tx *gorm.DB) error {
	if p.Category != nil && p.CategoryID == 0 {
		p.CategoryID = p.Category.ID
	}
	if p.CategoryID == 0 {
		return fmt.Errorf("%w: program %q has no category", ErrValidation, p.Title)
	}
	if p.Slug == "" {
		return fmt.Errorf("%w: program %q has no slug", ErrValidation, p.Title)
	}
	return nil
}
