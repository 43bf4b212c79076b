package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/repository"
	"github.com/vnkhanh/wild-series-backend/testutil"
)

type catalogEnv struct {
	db       *gorm.DB
	repo     *repository.Catalog
	ctx      context.Context
	horror   *models.Category
	comedy   *models.Category
	owner    *models.User
	programs []*models.Program
}

func newCatalogEnv(t *testing.T) *catalogEnv {
	db := testutil.NewTestDB(t)
	env := &catalogEnv{
		db:     db,
		repo:   repository.NewCatalog(db),
		ctx:    context.Background(),
		horror: testutil.CreateTestCategory(t, db, "Horreur"),
		comedy: testutil.CreateTestCategory(t, db, "Comédie"),
		owner:  testutil.CreateTestUser(t, db, "owner@example.com"),
	}
	titles := []string{"Walking Dead", "Friends", "Desperate Housewives", "Dr House", "Mr Robot"}
	for i, title := range titles {
		category := env.horror
		if i%2 == 1 {
			category = env.comedy
		}
		env.programs = append(env.programs, testutil.CreateTestProgram(t, db, title, category, env.owner))
	}
	return env
}

func titlesOf(programs []models.Program) []string {
	out := make([]string, 0, len(programs))
	for _, p := range programs {
		out = append(out, p.Title)
	}
	return out
}

func TestFindBy_LatestThreeNewestFirst(t *testing.T) {
	env := newCatalogEnv(t)

	latest, err := repository.FindBy[models.Program](env.ctx, env.db, repository.Filter{}, repository.IDDesc, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mr Robot", "Dr House", "Desperate Housewives"}, titlesOf(latest))

	viaCatalog, err := env.repo.LatestPrograms(env.ctx, 0, repository.LatestCount)
	require.NoError(t, err)
	assert.Equal(t, titlesOf(latest), titlesOf(viaCatalog))
}

func TestFindBy_FilterByCategory(t *testing.T) {
	env := newCatalogEnv(t)

	latest, err := env.repo.LatestPrograms(env.ctx, env.comedy.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr House", "Friends"}, titlesOf(latest))
}

func TestFindBy_NoMatchIsEmptyNotNil(t *testing.T) {
	env := newCatalogEnv(t)

	none, err := repository.FindBy[models.Program](env.ctx, env.db, repository.Filter{"category_id": 9999}, nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindLikeName_BlankBehavesAsFindAll(t *testing.T) {
	env := newCatalogEnv(t)

	all, err := repository.FindAll[models.Program](env.ctx, env.db)
	require.NoError(t, err)

	for _, term := range []string{"", "   "} {
		found, err := env.repo.SearchPrograms(env.ctx, term)
		require.NoError(t, err)
		assert.ElementsMatch(t, titlesOf(all), titlesOf(found))
	}
}

func TestFindLikeName_CaseInsensitiveSubstring(t *testing.T) {
	env := newCatalogEnv(t)

	found, err := env.repo.SearchPrograms(env.ctx, "HOUSE")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Desperate Housewives", "Dr House"}, titlesOf(found))

	none, err := env.repo.SearchPrograms(env.ctx, "breaking bad")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindLikeName_WildcardsAreLiteral(t *testing.T) {
	env := newCatalogEnv(t)
	testutil.CreateTestProgram(t, env.db, "50% Off", env.comedy, env.owner)
	testutil.CreateTestProgram(t, env.db, "500 Days", env.comedy, env.owner)
	testutil.CreateTestProgram(t, env.db, "Dead_Line", env.horror, env.owner)

	found, err := env.repo.SearchPrograms(env.ctx, "50%")
	require.NoError(t, err)
	assert.Equal(t, []string{"50% Off"}, titlesOf(found))

	found, err = env.repo.SearchPrograms(env.ctx, "_")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dead_Line"}, titlesOf(found))
}

func TestFindOneBy_NotFound(t *testing.T) {
	env := newCatalogEnv(t)

	_, err := env.repo.CategoryByName(env.ctx, "Western")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = env.repo.ProgramBySlug(env.ctx, "no-such-show")
	assert.ErrorIs(t, err, models.ErrNotFound)

	category, err := env.repo.CategoryByName(env.ctx, "Horreur")
	require.NoError(t, err)
	assert.Equal(t, env.horror.ID, category.ID)
}

func TestCategoryNameTaken_IgnoresCase(t *testing.T) {
	env := newCatalogEnv(t)

	taken, err := env.repo.CategoryNameTaken(env.ctx, " horreur ")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = env.repo.CategoryNameTaken(env.ctx, "Western")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestCreateProgram_LinksActorsBothWays(t *testing.T) {
	env := newCatalogEnv(t)
	lincoln := &models.Actor{Name: "Andrew Lincoln"}
	reedus := &models.Actor{Name: "Norman Reedus"}
	require.NoError(t, env.db.Create(lincoln).Error)
	require.NoError(t, env.db.Create(reedus).Error)

	program := &models.Program{Title: "Fear The Walking Dead", Slug: "fear-the-walking-dead", Summary: "Spin-off"}
	program.SetCategory(env.horror)
	program.AddActor(lincoln)
	program.AddActor(reedus)
	require.NoError(t, env.repo.CreateProgram(env.ctx, program))

	loaded, err := env.repo.ProgramBySlug(env.ctx, "fear-the-walking-dead")
	require.NoError(t, err)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "Horreur", loaded.Category.Name)
	assert.Equal(t, []uint{lincoln.ID, reedus.ID}, loaded.ActorIDs())

	programs, err := env.repo.ProgramsOfActor(env.ctx, reedus.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fear The Walking Dead"}, titlesOf(programs))
}

func TestCreateProgram_RequiresCategory(t *testing.T) {
	env := newCatalogEnv(t)

	program := &models.Program{Title: "Orphan", Slug: "orphan", Summary: "No category"}
	err := env.repo.CreateProgram(env.ctx, program)
	assert.ErrorIs(t, err, models.ErrValidation)

	taken, err := env.repo.SlugTaken(env.ctx, "orphan")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateProgram_ReplacesActors(t *testing.T) {
	env := newCatalogEnv(t)
	a := &models.Actor{Name: "Lauren Cohan"}
	b := &models.Actor{Name: "Danai Gurira"}
	require.NoError(t, env.db.Create(a).Error)
	require.NoError(t, env.db.Create(b).Error)

	program := env.programs[0]
	program.AddActor(a)
	require.NoError(t, env.repo.UpdateProgram(env.ctx, program))

	program.RemoveActor(a)
	program.AddActor(b)
	program.Summary = "Updated"
	require.NoError(t, env.repo.UpdateProgram(env.ctx, program))

	loaded, err := env.repo.ProgramByID(env.ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", loaded.Summary)
	assert.Equal(t, []uint{b.ID}, loaded.ActorIDs())
}

func TestDeleteProgram_Cascades(t *testing.T) {
	env := newCatalogEnv(t)
	actor := &models.Actor{Name: "John Doe"}
	require.NoError(t, env.db.Create(actor).Error)

	target := env.programs[0]
	target.AddActor(actor)
	require.NoError(t, env.repo.UpdateProgram(env.ctx, target))
	other := env.programs[1]

	for _, p := range []*models.Program{target, other} {
		season := testutil.CreateTestSeason(t, env.db, p, 1)
		episode := testutil.CreateTestEpisode(t, env.db, season, 1, "Pilot")
		comment := &models.Comment{Comment: "Great", Rate: 4}
		comment.SetEpisode(episode)
		comment.SetAuthor(env.owner)
		require.NoError(t, env.repo.CreateComment(env.ctx, comment))
	}

	require.NoError(t, env.repo.DeleteProgram(env.ctx, target))

	_, err := env.repo.ProgramByID(env.ctx, target.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	count := func(model interface{}, where string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, env.db.Model(model).Where(where, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&models.Season{}, "program_id = ?", target.ID))
	assert.Zero(t, count(&models.Episode{}, "program_id = ?", target.ID))
	assert.Zero(t, count(&models.ProgramActor{}, "program_id = ?", target.ID))
	assert.EqualValues(t, 1, count(&models.Comment{}, "1 = 1"))
	assert.EqualValues(t, 1, count(&models.Season{}, "program_id = ?", other.ID))
	assert.EqualValues(t, 1, count(&models.Actor{}, "id = ?", actor.ID))

	assert.ErrorIs(t, env.repo.DeleteProgram(env.ctx, target), models.ErrNotFound)
}

func TestSeasonsAndEpisodes_Ordered(t *testing.T) {
	env := newCatalogEnv(t)
	program := env.programs[2]

	s2 := testutil.CreateTestSeason(t, env.db, program, 2)
	s1 := testutil.CreateTestSeason(t, env.db, program, 1)
	for _, n := range []int{3, 1, 2} {
		testutil.CreateTestEpisode(t, env.db, s1, n, fmt.Sprintf("Episode %d", n))
	}

	seasons, err := env.repo.SeasonsOf(env.ctx, program.ID)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, s1.ID, seasons[0].ID)
	assert.Equal(t, s2.ID, seasons[1].ID)

	episodes, err := env.repo.EpisodesOf(env.ctx, s1.ID)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{episodes[0].Number, episodes[1].Number, episodes[2].Number})

	found, err := env.repo.EpisodeBySlug(env.ctx, s1.ID, "episode-2")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Number)
	assert.Equal(t, program.ID, found.ProgramID)

	_, err = env.repo.EpisodeBySlug(env.ctx, s2.ID, "episode-2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	empty, err := env.repo.EpisodesOf(env.ctx, s2.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSeasonNumber_UniquePerProgram(t *testing.T) {
	env := newCatalogEnv(t)
	testutil.CreateTestSeason(t, env.db, env.programs[0], 1)

	dup := &models.Season{Number: 1}
	dup.SetProgram(env.programs[0])
	assert.Error(t, env.repo.CreateSeason(env.ctx, dup))

	taken, err := env.repo.SeasonNumberTaken(env.ctx, env.programs[0].ID, 1)
	require.NoError(t, err)
	assert.True(t, taken)

	sameNumberOtherProgram := &models.Season{Number: 1}
	sameNumberOtherProgram.SetProgram(env.programs[1])
	assert.NoError(t, env.repo.CreateSeason(env.ctx, sameNumberOtherProgram))
}

func TestCommentsOf_PreloadsAuthor(t *testing.T) {
	env := newCatalogEnv(t)
	season := testutil.CreateTestSeason(t, env.db, env.programs[0], 1)
	episode := testutil.CreateTestEpisode(t, env.db, season, 1, "Days Gone Bye")

	for _, text := range []string{"first", "second"} {
		comment := &models.Comment{Comment: text}
		comment.SetEpisode(episode)
		comment.SetAuthor(env.owner)
		require.NoError(t, env.repo.CreateComment(env.ctx, comment))
	}

	comments, err := env.repo.CommentsOf(env.ctx, episode.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Comment)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "owner@example.com", comments[0].Author.Email)
}
