package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadSeed reads a {"projects": [...]} document. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadSeed(path string) ([]models.Project, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.RefSeedLoad, "Failed to read seed document", path, err, errors.LevelWarning)
	}

	var doc models.ProjectList
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(body, &doc)
	default:
		err = json.Unmarshal(body, &doc)
	}
	if err != nil {
		return nil, errors.New(
			errors.RefSeedLoad,
			"Failed to parse seed document",
			fmt.Sprintf("%s is not a valid project document", path),
			err,
			errors.LevelWarning,
		)
	}

	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	return doc.Projects, nil
}
