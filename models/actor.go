package models

import "time"

type Actor struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Programs  []*Program `gorm:"many2many:program_actors" json:"-"`
}

// HasProgram reports whether p is already in the actor's collection.
func (a *Actor) HasProgram(p *Program) bool {
	for _, existing := range a.Programs {
		if existing == p || (p.ID != 0 && existing.ID == p.ID) {
			return true
		}
	}
	return false
}

// AddProgram registers the actor on p and p on the actor.
func (a *Actor) AddProgram(p *Program) {
	if a.HasProgram(p) {
		return
	}
	a.Programs = append(a.Programs, p)
	p.AddActor(a)
}

// RemoveProgram is the inverse of AddProgram.
func (a *Actor) RemoveProgram(p *Program) {
	if !a.HasProgram(p) {
		return
	}
	a.Programs = removeProgram(a.Programs, p)
	p.RemoveActor(a)
}

func removeProgram(list []*Program, p *Program) []*Program {
	out := list[:0]
	for _, existing := range list {
		if existing == p || (p.ID != 0 && existing.ID == p.ID) {
			continue
		}
		out = append(out, existing)
	}
	return out
}
