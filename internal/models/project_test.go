package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseProjectID(t *testing.T) {
	tests := []struct {
		in      string
		want    ProjectID
		wantErr bool
	}{
		{in: "1700000000001", want: 1700000000001},
		{in: " 42 ", want: 42},
		{in: "1700000000000.0", want: 1700000000000},
		{in: "1.5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProjectID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectID_DecodesNumberAndString(t *testing.T) {
	var doc ProjectList
	require.NoError(t, json.Unmarshal([]byte(`{"projects":[{"id":1700000000002},{"id":"1700000000001"},{"id":null}]}`), &doc))

	require.Len(t, doc.Projects, 3)
	assert.Equal(t, ProjectID(1700000000002), doc.Projects[0].ID)
	assert.Equal(t, ProjectID(1700000000001), doc.Projects[1].ID)
	assert.Equal(t, ProjectID(0), doc.Projects[2].ID)

	var fromYAML ProjectList
	require.NoError(t, yaml.Unmarshal([]byte("projects:\n  - id: \"7\"\n  - id: 8\n"), &fromYAML))
	assert.Equal(t, ProjectID(7), fromYAML.Projects[0].ID)
	assert.Equal(t, ProjectID(8), fromYAML.Projects[1].ID)

	var bad ProjectList
	assert.Error(t, json.Unmarshal([]byte(`{"projects":[{"id":"x"}]}`), &bad))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "Cobra"}, ParseTags(" Go , ,Cobra "))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.NotNil(t, CleanTags(nil))
}

func TestProjectInput_Validate(t *testing.T) {
	in := ProjectInput{Title: "t", Description: "d", Image: "i"}
	assert.NoError(t, in.Validate())

	err := ProjectInput{Title: "  ", Image: "i"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing required fields: title, description", err.Error())
}

func TestProjectInput_ApplyAndInputOf(t *testing.T) {
	p := Project{ID: 5, Date: "2024-01-01"}
	ProjectInput{
		Title:       "CLI",
		Description: "d",
		Image:       "i",
		Tags:        []string{"Go"},
		GitHub:      " ",
		Demo:        "https://demo",
	}.Apply(&p)

	assert.Equal(t, ProjectID(5), p.ID)
	assert.Equal(t, "2024-01-01", p.Date)
	assert.Nil(t, p.GitHub)
	require.NotNil(t, p.Demo)
	assert.Equal(t, "https://demo", *p.Demo)

	in := InputOf(p)
	assert.Equal(t, "CLI", in.Title)
	assert.Empty(t, in.GitHub)
	assert.Equal(t, "https://demo", in.Demo)
}

func TestPreferences_Dir(t *testing.T) {
	assert.Equal(t, "rtl", Preferences{Language: "ar"}.Dir())
	assert.Equal(t, "ltr", Preferences{Language: "en"}.Dir())
}
