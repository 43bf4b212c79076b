package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/wild-series-backend/models"
)

// LatestCount is how many programs the home page and category pages show.
const LatestCount = 3

// Catalog groups the reads and writes the controllers need.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (r *Catalog) DB() *gorm.DB {
	return r.db
}

// ---------- Categories ----------

func (r *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	return FindAll[models.Category](ctx, r.db)
}

func (r *Catalog) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return FindOneBy[models.Category](ctx, r.db, Filter{"name": name})
}

func (r *Catalog) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return FindOneBy[models.Category](ctx, r.db, Filter{"id": id})
}

func (r *Catalog) CategoryNameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", name).
		Count(&count).Error
	return count > 0, err
}

func (r *Catalog) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

// ---------- Actors ----------

func (r *Catalog) Actors(ctx context.Context) ([]models.Actor, error) {
	return FindAll[models.Actor](ctx, r.db)
}

func (r *Catalog) ActorByID(ctx context.Context, id uint) (*models.Actor, error) {
	return FindOneBy[models.Actor](ctx, r.db, Filter{"id": id})
}

// ActorsByIDs loads the given actors; an unknown id is a validation error.
func (r *Catalog) ActorsByIDs(ctx context.Context, ids []uint) ([]*models.Actor, error) {
	if len(ids) == 0 {
		return []*models.Actor{}, nil
	}
	var actors []*models.Actor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&actors).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(actors))
	for _, a := range actors {
		found[a.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, fmt.Errorf("%w: unknown actor %d", models.ErrValidation, id)
		}
	}
	return actors, nil
}

func (r *Catalog) ProgramsOfActor(ctx context.Context, actorID uint) ([]models.Program, error) {
	programs := []models.Program{}
	err := r.db.WithContext(ctx).
		Joins("JOIN program_actors ON program_actors.program_id = programs.id").
		Where("program_actors.actor_id = ?", actorID).
		Order("programs.id").
		Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

// ---------- Programs ----------

func (r *Catalog) Programs(ctx context.Context) ([]models.Program, error) {
	return FindAll[models.Program](ctx, r.db)
}

// SearchPrograms matches term against program titles.
func (r *Catalog) SearchPrograms(ctx context.Context, term string) ([]models.Program, error) {
	return FindLikeName[models.Program](ctx, r.db, "title", term)
}

// LatestPrograms returns the n most recently created programs, newest
// first. categoryID 0 means every category.
func (r *Catalog) LatestPrograms(ctx context.Context, categoryID uint, n int) ([]models.Program, error) {
	filter := Filter{}
	if categoryID != 0 {
		filter["category_id"] = categoryID
	}
	return FindBy[models.Program](ctx, r.db, filter, IDDesc, n)
}

func (r *Catalog) ProgramBySlug(ctx context.Context, slug string) (*models.Program, error) {
	return r.findProgram(ctx, "slug = ?", slug)
}

func (r *Catalog) ProgramByID(ctx context.Context, id uint) (*models.Program, error) {
	return r.findProgram(ctx, "id = ?", id)
}

func (r *Catalog) findProgram(ctx context.Context, query string, arg interface{}) (*models.Program, error) {
	var program models.Program
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("actors.id") }).
		Where(query, arg).
		Take(&program).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &program, nil
}

func (r *Catalog) SlugTaken(ctx context.Context, slug string) (bool, error) {
	count, err := Count[models.Program](ctx, r.db, Filter{"slug": slug})
	return count > 0, err
}

// CreateProgram inserts the program and its actor junction rows in one
// transaction.
func (r *Catalog) CreateProgram(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return Persist(tx, program)
	})
}

// UpdateProgram saves the program columns and replaces its actor set.
func (r *Catalog) UpdateProgram(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(program).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.ProgramActor{}).Error; err != nil {
			return err
		}
		return linkActors(tx, program)
	})
}

// DeleteProgram removes the program and, in the same transaction, its
// seasons, episodes, comments and actor links.
func (r *Catalog) DeleteProgram(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		episodeIDs := tx.Model(&models.Episode{}).Select("id").Where("program_id = ?", program.ID)
		if err := tx.Where("episode_id IN (?)", episodeIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.Episode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.Season{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.ProgramActor{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Program{}, program.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// ---------- Seasons / Episodes / Comments ----------

// SeasonsOf returns the program's seasons ordered by number.
func (r *Catalog) SeasonsOf(ctx context.Context, programID uint) ([]models.Season, error) {
	return FindBy[models.Season](ctx, r.db, Filter{"program_id": programID}, []Order{{Column: "number"}}, 0)
}

func (r *Catalog) SeasonByNumber(ctx context.Context, programID uint, number int) (*models.Season, error) {
	return FindOneBy[models.Season](ctx, r.db, Filter{"program_id": programID, "number": number})
}

func (r *Catalog) SeasonNumberTaken(ctx context.Context, programID uint, number int) (bool, error) {
	count, err := Count[models.Season](ctx, r.db, Filter{"program_id": programID, "number": number})
	return count > 0, err
}

func (r *Catalog) CreateSeason(ctx context.Context, season *models.Season) error {
	return Persist(r.db.WithContext(ctx), season)
}

// EpisodesOf returns the season's episodes ordered by number.
func (r *Catalog) EpisodesOf(ctx context.Context, seasonID uint) ([]models.Episode, error) {
	return FindBy[models.Episode](ctx, r.db, Filter{"season_id": seasonID}, []Order{{Column: "number"}, {Column: "id"}}, 0)
}

func (r *Catalog) EpisodeBySlug(ctx context.Context, seasonID uint, slug string) (*models.Episode, error) {
	return FindOneBy[models.Episode](ctx, r.db, Filter{"season_id": seasonID, "slug": slug})
}

func (r *Catalog) EpisodeByID(ctx context.Context, id uint) (*models.Episode, error) {
	return FindOneBy[models.Episode](ctx, r.db, Filter{"id": id})
}

func (r *Catalog) EpisodeSlugTaken(ctx context.Context, programID uint, slug string) (bool, error) {
	count, err := Count[models.Episode](ctx, r.db, Filter{"program_id": programID, "slug": slug})
	return count > 0, err
}

func (r *Catalog) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	return Persist(r.db.WithContext(ctx), episode)
}

// CommentsOf returns the episode's comments, oldest first, with authors.
func (r *Catalog) CommentsOf(ctx context.Context, episodeID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("episode_id = ?", episodeID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *Catalog) CreateComment(ctx context.Context, comment *models.Comment) error {
	return Persist(r.db.WithContext(ctx), comment)
}

// ---------- Users ----------

func (r *Catalog) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return FindOneBy[models.User](ctx, r.db, Filter{"id": id})
}

func (r *Catalog) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return FindOneBy[models.User](ctx, r.db, Filter{"email": email})
}

func (r *Catalog) CreateUser(ctx context.Context, user *models.User) error {
	return Persist(r.db.WithContext(ctx), user)
}
