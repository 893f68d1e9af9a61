package webui

import (
	"lotbook/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm_FreshValuePerCall(t *testing.T) {
	a := NewForm()
	b := NewForm()
	require.NoError(t, a.Set("name", "Site A"))

	assert.True(t, a.IsNew())
	assert.Empty(t, b.Project.Name)
	assert.NotSame(t, a, b)
}

func TestForm_SetLeavesSiblingsUntouched(t *testing.T) {
	f := FormFromRecord(models.Project{
		ID:   "65f0c0ffee0000000000beef",
		Name: "Site A",
		Address: models.Address{
			Address1: "1 Main St",
			City:     "Cebu City",
			Zip:      "6000",
		},
		OriginalOwner: models.Owner{
			FirstName:   "Juan",
			SocialMedia: models.SocialMedia{Viber: "viber-id", Line: "line-id"},
		},
	})

	require.NoError(t, f.Set("address.city", "Mandaue"))
	require.NoError(t, f.Set("original_owner.social_media.line", "new-line"))

	assert.Equal(t, "65f0c0ffee0000000000beef", f.ID)
	assert.False(t, f.IsNew())
	assert.Equal(t, "Mandaue", f.Project.Address.City)
	assert.Equal(t, "1 Main St", f.Project.Address.Address1)
	assert.Equal(t, "6000", f.Project.Address.Zip)
	assert.Equal(t, "new-line", f.Project.OriginalOwner.SocialMedia.Line)
	assert.Equal(t, "viber-id", f.Project.OriginalOwner.SocialMedia.Viber)
	assert.Equal(t, "Juan", f.Project.OriginalOwner.FirstName)
	assert.Equal(t, "Site A", f.Project.Name)
}

func TestForm_UnknownField(t *testing.T) {
	f := NewForm()

	assert.ErrorIs(t, f.Set("address.country", "PH"), ErrUnknownField)
	_, err := f.Get("_id")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestForm_EveryFieldIsBound(t *testing.T) {
	f := NewForm()
	for _, field := range Fields() {
		require.NoError(t, f.Set(field.Path, "v:"+field.Path))
	}

	for _, field := range Fields() {
		got, err := f.Get(field.Path)
		require.NoError(t, err)
		assert.Equal(t, "v:"+field.Path, got)
	}

	in := f.Input()
	assert.Equal(t, "v:address.zip", in.Zip)
	assert.Equal(t, "v:coordinates.latitude", in.Coordinates.Latitude)
	assert.Equal(t, "v:original_owner.social_media.whatsapp", in.OriginalOwner.SocialMedia.WhatsApp)
	assert.Equal(t, "v:LTS", in.LTS)
}

func TestForm_Sections(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.Set("name", "Site A"))

	sections := f.Sections()
	titles := make([]string, 0, len(sections))
	total := 0
	for _, s := range sections {
		titles = append(titles, s.Title)
		total += len(s.Fields)
	}

	assert.Equal(t, []string{
		sectionProject, sectionAddress, sectionCoords, sectionOwner, sectionSocial, sectionDetails,
	}, titles)
	assert.Equal(t, len(Fields()), total)
	assert.Equal(t, "Site A", sections[0].Fields[2].Value)
}
