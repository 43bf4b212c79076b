package forms_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/models"
)

func bindForm(t *testing.T, values url.Values, obj any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return forms.FromBinding(binding.Form.Bind(req, obj))
}

func TestCategoryForm_BlankName(t *testing.T) {
	var f forms.CategoryForm
	err := bindForm(t, url.Values{"name": {""}}, &f)

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Contains(t, forms.FieldErrors(err), "name")
}

func TestCategoryForm_Apply(t *testing.T) {
	var f forms.CategoryForm
	require.NoError(t, bindForm(t, url.Values{"name": {"  Horreur "}}, &f))

	var c models.Category
	f.ApplyTo(&c)
	assert.Equal(t, "Horreur", c.Name)
}

func TestCommentForm_Rate(t *testing.T) {
	tests := []struct {
		name    string
		rate    []string
		wantErr bool
	}{
		{"zero allowed", []string{"0"}, false},
		{"five allowed", []string{"5"}, false},
		{"six rejected", []string{"6"}, true},
		{"negative rejected", []string{"-1"}, true},
		{"missing rejected", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"comment": {"Génial"}}
			if tt.rate != nil {
				values["rate"] = tt.rate
			}
			var f forms.CommentForm
			err := bindForm(t, values, &f)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, forms.FieldErrors(err), "rate")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCommentForm_IgnoresAuthor(t *testing.T) {
	var f forms.CommentForm
	err := bindForm(t, url.Values{"comment": {"Top"}, "rate": {"3"}, "author_id": {"99"}, "author": {"99"}}, &f)
	require.NoError(t, err)

	c := models.Comment{AuthorID: 7}
	f.ApplyTo(&c)
	assert.Equal(t, uint(7), c.AuthorID)
	assert.Equal(t, "Top", c.Comment)
	assert.Equal(t, 3, c.Rate)
}

func TestProgramForm_BindsActorList(t *testing.T) {
	var f forms.ProgramForm
	err := bindForm(t, url.Values{
		"title":    {"Dark"},
		"summary":  {"Des zombies envahissent la terre"},
		"category": {"2"},
		"actors":   {"1", "3"},
	}, &f)
	require.NoError(t, err)
	assert.Equal(t, uint(2), f.CategoryID)
	assert.Equal(t, []uint{1, 3}, f.ActorIDs)
}

func TestProgramForm_MissingFields(t *testing.T) {
	var f forms.ProgramForm
	err := bindForm(t, url.Values{"title": {"Dark"}}, &f)

	fields := forms.FieldErrors(err)
	assert.Contains(t, fields, "summary")
	assert.Contains(t, fields, "category")
	assert.NotContains(t, fields, "title")
}

func TestProgramForm_ApplyToReplacesActorsKeepsSlug(t *testing.T) {
	horror := &models.Category{ID: 5, Name: "Horreur"}
	a1 := &models.Actor{ID: 1, Name: "Andrew Lincoln"}
	a2 := &models.Actor{ID: 2, Name: "Norman Reedus"}
	a3 := &models.Actor{ID: 3, Name: "Lauren Cohan"}

	p := &models.Program{ID: 10, Title: "Walking Dead", Slug: "walking-dead"}
	p.AddActor(a1)
	p.AddActor(a2)

	f := forms.ProgramForm{Title: "The Walking Dead", Summary: "S", CategoryID: 5, ActorIDs: []uint{2, 3}}
	f.ApplyTo(p, horror, []*models.Actor{a2, a3})

	assert.Equal(t, "The Walking Dead", p.Title)
	assert.Equal(t, "walking-dead", p.Slug)
	assert.Equal(t, uint(5), p.CategoryID)
	assert.Equal(t, []uint{2, 3}, p.ActorIDs())
	assert.False(t, a1.HasProgram(p))
	assert.True(t, a3.HasProgram(p))
}

func TestProgramForm_ApplyToNewProgramGetsSlug(t *testing.T) {
	p := &models.Program{}
	forms.ProgramForm{Title: "Mr Robot", Summary: "S"}.ApplyTo(p, &models.Category{ID: 1}, nil)
	assert.Equal(t, "mr-robot", p.Slug)
}

func TestProgramFormFrom(t *testing.T) {
	p := &models.Program{Title: "Friends", Summary: "S", CategoryID: 4}
	p.AddActor(&models.Actor{ID: 8})

	f := forms.ProgramFormFrom(p)
	assert.Equal(t, forms.ProgramForm{Title: "Friends", Summary: "S", CategoryID: 4, ActorIDs: []uint{8}}, f)
}

func TestSeasonForm(t *testing.T) {
	var f forms.SeasonForm
	err := bindForm(t, url.Values{"number": {"0"}, "year": {"1800"}}, &f)
	fields := forms.FieldErrors(err)
	assert.Contains(t, fields, "number")
	assert.Contains(t, fields, "year")

	f = forms.SeasonForm{}
	require.NoError(t, bindForm(t, url.Values{"number": {"2"}, "description": {" Fin "}}, &f))
	program := &models.Program{ID: 3}
	var s models.Season
	f.ApplyTo(&s, program)
	assert.Equal(t, uint(3), s.ProgramID)
	assert.Equal(t, 2, s.Number)
	assert.Equal(t, "Fin", s.Description)
}

func TestEpisodeForm_ApplyTo(t *testing.T) {
	season := &models.Season{ID: 4, ProgramID: 9}
	var e models.Episode
	forms.EpisodeForm{Title: "Pilot", Number: 1}.ApplyTo(&e, season)

	assert.Equal(t, "pilot", e.Slug)
	assert.Equal(t, uint(4), e.SeasonID)
	assert.Equal(t, uint(9), e.ProgramID)
}

func TestSearchProgramForm_Term(t *testing.T) {
	assert.Equal(t, "dead", forms.SearchProgramForm{Search: "  dead "}.Term())
	assert.Empty(t, forms.SearchProgramForm{}.Term())
}

func TestFromBinding(t *testing.T) {
	assert.NoError(t, forms.FromBinding(nil))

	err := forms.FromBinding(errors.New("unexpected EOF"))
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, "unexpected EOF", forms.FieldErrors(err)[forms.FormField])
	assert.Nil(t, forms.FieldErrors(errors.New("plain")))
}
