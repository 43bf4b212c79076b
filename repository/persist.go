package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/wild-series-backend/models"
)

// Persist inserts entity without cascading into its associations. Foreign
// keys are taken from the attached parents, and a program's actors are
// linked through the junction table.
func Persist(tx *gorm.DB, entity interface{}) error {
	syncForeignKeys(entity)

	if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
		return err
	}

	if program, ok := entity.(*models.Program); ok {
		return linkActors(tx, program)
	}
	return nil
}

func syncForeignKeys(entity interface{}) {
	switch e := entity.(type) {
	case *models.Program:
		if e.Category != nil {
			e.CategoryID = e.Category.ID
		}
		if e.Owner != nil {
			id := e.Owner.ID
			e.OwnerID = &id
		}
	case *models.Season:
		if e.Program != nil {
			e.ProgramID = e.Program.ID
		}
	case *models.Episode:
		if e.Season != nil {
			e.SeasonID = e.Season.ID
			e.ProgramID = e.Season.ProgramID
		}
	case *models.Comment:
		if e.Episode != nil {
			e.EpisodeID = e.Episode.ID
		}
		if e.Author != nil {
			e.AuthorID = e.Author.ID
		}
	}
}

func linkActors(tx *gorm.DB, program *models.Program) error {
	if len(program.Actors) == 0 {
		return nil
	}
	links := make([]models.ProgramActor, 0, len(program.Actors))
	for _, actor := range program.Actors {
		links = append(links, models.ProgramActor{ProgramID: program.ID, ActorID: actor.ID})
	}
	return tx.Create(&links).Error
}
