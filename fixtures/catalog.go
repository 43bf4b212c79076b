package fixtures

import (
	"fmt"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
)

const (
	SeasonsPerProgram = 2
	EpisodesPerSeason = 3

	// DefaultPassword is the plain password of every seeded user.
	DefaultPassword = "wildseries"

	programSummary = "Des zombies envahissent la terre"
)

var (
	Categories = []string{"Action", "Aventure", "Animation", "Fantastique", "Horreur"}
	Actors     = []string{"Andrew Lincoln", "Norman Reedus", "Lauren Cohan", "Danai Gurira", "John Doe"}
	Programs   = []string{"Walking Dead", "Friends", "Desperate Housewives", "Dr House", "Mr Robot"}
)

func key(prefix string, i int) string {
	return fmt.Sprintf("%s_%d", prefix, i)
}

// All returns every fixture group needed to seed a usable catalog.
func All() []Fixture {
	return []Fixture{
		UserFixtures{},
		CategoryFixtures{},
		ActorFixtures{},
		ProgramFixtures{},
		SeasonFixtures{},
		EpisodeFixtures{},
		CommentFixtures{},
	}
}

type UserFixtures struct{}

func (UserFixtures) Name() string           { return "UserFixtures" }
func (UserFixtures) Dependencies() []string { return nil }

func (UserFixtures) Load(_ *References, batch *Batch) error {
	hash, err := utils.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	batch.Add(key("user", 0), &models.User{
		FullName: "Contributor",
		Email:    "contributor@wildseries.local",
		Password: hash,
		Roles:    []models.UserRole{models.RoleContributor},
	})
	batch.Add(key("user", 1), &models.User{
		FullName: "Admin",
		Email:    "admin@wildseries.local",
		Password: hash,
		Roles:    []models.UserRole{models.RoleAdmin},
	})
	return nil
}

type CategoryFixtures struct{}

func (CategoryFixtures) Name() string           { return "CategoryFixtures" }
func (CategoryFixtures) Dependencies() []string { return nil }

func (CategoryFixtures) Load(_ *References, batch *Batch) error {
	for i, name := range Categories {
		batch.Add(key("category", i), &models.Category{Name: name})
	}
	return nil
}

type ActorFixtures struct{}

func (ActorFixtures) Name() string           { return "ActorFixtures" }
func (ActorFixtures) Dependencies() []string { return nil }

func (ActorFixtures) Load(_ *References, batch *Batch) error {
	for i, name := range Actors {
		batch.Add(key("actor", i), &models.Actor{Name: name})
	}
	return nil
}

type ProgramFixtures struct{}

func (ProgramFixtures) Name() string { return "ProgramFixtures" }
func (ProgramFixtures) Dependencies() []string {
	return []string{"ActorFixtures", "CategoryFixtures", "UserFixtures"}
}

func (ProgramFixtures) Load(refs *References, batch *Batch) error {
	category, err := Ref[models.Category](refs, key("category", 4))
	if err != nil {
		return err
	}
	owner, err := Ref[models.User](refs, key("user", 0))
	if err != nil {
		return err
	}
	actors := make([]*models.Actor, 0, 4)
	for i := 0; i < 4; i++ {
		actor, err := Ref[models.Actor](refs, key("actor", i))
		if err != nil {
			return err
		}
		actors = append(actors, actor)
	}

	for i, title := range Programs {
		program := &models.Program{
			Title:   title,
			Slug:    utils.Slugify(title),
			Summary: programSummary,
		}
		program.SetCategory(category)
		program.SetOwner(owner)
		for _, actor := range actors {
			program.AddActor(actor)
		}
		batch.Add(key("program", i), program)
	}
	return nil
}

type SeasonFixtures struct{}

func (SeasonFixtures) Name() string           { return "SeasonFixtures" }
func (SeasonFixtures) Dependencies() []string { return []string{"ProgramFixtures"} }

func (SeasonFixtures) Load(refs *References, batch *Batch) error {
	n := 0
	for i := range Programs {
		program, err := Ref[models.Program](refs, key("program", i))
		if err != nil {
			return err
		}
		for number := 1; number <= SeasonsPerProgram; number++ {
			season := &models.Season{
				Number:      number,
				Year:        2010 + i + number,
				Description: fmt.Sprintf("Saison %d de %s", number, program.Title),
			}
			season.SetProgram(program)
			batch.Add(key("season", n), season)
			n++
		}
	}
	return nil
}

type EpisodeFixtures struct{}

func (EpisodeFixtures) Name() string           { return "EpisodeFixtures" }
func (EpisodeFixtures) Dependencies() []string { return []string{"SeasonFixtures"} }

func (EpisodeFixtures) Load(refs *References, batch *Batch) error {
	n := 0
	for s := 0; s < len(Programs)*SeasonsPerProgram; s++ {
		season, err := Ref[models.Season](refs, key("season", s))
		if err != nil {
			return err
		}
		for number := 1; number <= EpisodesPerSeason; number++ {
			title := fmt.Sprintf("Saison %d, épisode %d", season.Number, number)
			episode := &models.Episode{
				Number:  number,
				Title:   title,
				Slug:    utils.Slugify(title),
				Summary: programSummary,
			}
			episode.SetSeason(season)
			batch.Add(key("episode", n), episode)
			n++
		}
	}
	return nil
}

type CommentFixtures struct{}

func (CommentFixtures) Name() string { return "CommentFixtures" }
func (CommentFixtures) Dependencies() []string {
	return []string{"EpisodeFixtures", "UserFixtures"}
}

func (CommentFixtures) Load(refs *References, batch *Batch) error {
	author, err := Ref[models.User](refs, key("user", 1))
	if err != nil {
		return err
	}
	for s := 0; s < len(Programs)*SeasonsPerProgram; s++ {
		episode, err := Ref[models.Episode](refs, key("episode", s*EpisodesPerSeason))
		if err != nil {
			return err
		}
		comment := &models.Comment{Comment: "Super épisode !", Rate: 4}
		comment.SetEpisode(episode)
		comment.SetAuthor(author)
		batch.Persist(comment)
	}
	return nil
}
