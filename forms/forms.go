package forms

import (
	"strings"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
)

type CategoryForm struct {
	Name string `form:"name" json:"name" binding:"required,max=100"`
}

func (f CategoryForm) ApplyTo(c *models.Category) {
	c.Name = strings.TrimSpace(f.Name)
}

// ProgramForm binds title, summary, category and actors. Category and
// actors are submitted as ids and resolved by the caller.
type ProgramForm struct {
	Title      string `form:"title" json:"title" binding:"required,max=255"`
	Summary    string `form:"summary" json:"summary" binding:"required"`
	CategoryID uint   `form:"category" json:"category" binding:"required"`
	ActorIDs   []uint `form:"actors" json:"actors"`
}

// ProgramFormFrom pre-fills the edit form.
func ProgramFormFrom(p *models.Program) ProgramForm {
	return ProgramForm{
		Title:      p.Title,
		Summary:    p.Summary,
		CategoryID: p.CategoryID,
		ActorIDs:   p.ActorIDs(),
	}
}

// ApplyTo copies the form onto p and replaces its actor set with actors.
// The slug is derived from the title only when p has none yet.
func (f ProgramForm) ApplyTo(p *models.Program, category *models.Category, actors []*models.Actor) {
	p.Title = strings.TrimSpace(f.Title)
	p.Summary = strings.TrimSpace(f.Summary)
	p.SetCategory(category)
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}

	keep := make(map[uint]bool, len(actors))
	for _, a := range actors {
		keep[a.ID] = true
	}
	for _, existing := range append([]*models.Actor(nil), p.Actors...) {
		if !keep[existing.ID] {
			p.RemoveActor(existing)
		}
	}
	for _, a := range actors {
		p.AddActor(a)
	}
}

type SeasonForm struct {
	Number      int    `form:"number" json:"number" binding:"required,min=1"`
	Year        int    `form:"year" json:"year" binding:"omitempty,gte=1900,lte=2100"`
	Description string `form:"description" json:"description" binding:"max=5000"`
}

func (f SeasonForm) ApplyTo(s *models.Season, program *models.Program) {
	s.Number = f.Number
	s.Year = f.Year
	s.Description = strings.TrimSpace(f.Description)
	s.SetProgram(program)
}

type EpisodeForm struct {
	Title   string `form:"title" json:"title" binding:"required,max=255"`
	Number  int    `form:"number" json:"number" binding:"required,min=1"`
	Summary string `form:"summary" json:"summary"`
}

func (f EpisodeForm) ApplyTo(e *models.Episode, season *models.Season) {
	e.Title = strings.TrimSpace(f.Title)
	e.Number = f.Number
	e.Summary = strings.TrimSpace(f.Summary)
	if e.Slug == "" {
		e.Slug = utils.Slugify(e.Title)
	}
	e.SetSeason(season)
}

// CommentForm has no author field: the author is always the caller.
type CommentForm struct {
	Comment string `form:"comment" json:"comment" binding:"required,max=2000"`
	Rate    *int   `form:"rate" json:"rate" binding:"required,gte=0,lte=5"`
}

func (f CommentForm) ApplyTo(c *models.Comment) {
	c.Comment = strings.TrimSpace(f.Comment)
	if f.Rate != nil {
		c.Rate = *f.Rate
	}
}

type SearchProgramForm struct {
	Search string `form:"search" json:"search" binding:"max=255"`
}

func (f SearchProgramForm) Term() string {
	return strings.TrimSpace(f.Search)
}
