package service

import (
	"path/filepath"
	"testing"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed(t *testing.T) {
	yamlSeed := `projects:
  - id: "1700000000001"
    title: CLI
    description: A tool
    image: img/cli.png
    tags: [Go, Cobra]
    date: "2023-11-14"
`

	tests := []struct {
		name    string
		file    string
		body    string
		wantIDs []models.ProjectID
		wantErr bool
	}{
		{name: "json", file: "p.json", body: seedJSON, wantIDs: []models.ProjectID{1700000000002, 1700000000001}},
		{name: "yaml", file: "p.yaml", body: yamlSeed, wantIDs: []models.ProjectID{1700000000001}},
		{name: "empty document", file: "p.json", body: `{}`, wantIDs: []models.ProjectID{}},
		{name: "bad id", file: "p.json", body: `{"projects":[{"id":"abc"}]}`, wantErr: true},
		{name: "not json", file: "p.json", body: `projects: []`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects, err := LoadSeed(writeSeed(t, tt.file, tt.body))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.RefSeedLoad))
				return
			}

			require.NoError(t, err)
			ids := make([]models.ProjectID, 0, len(projects))
			for _, p := range projects {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.RefSeedLoad))
}
