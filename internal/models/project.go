package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// * ProjectID is a millisecond creation timestamp. Seed documents and form
// * submissions carry it either as a JSON number or a numeric string, so both
// * decode to the same value.
type ProjectID int64

func ParseProjectID(s string) (ProjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty project id")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ProjectID(n), nil
	}

	// "1700000000000.0" and friends still compare equal to the integer form
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return ProjectID(int64(f)), nil
}

func (id ProjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id *ProjectID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*id = 0
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	parsed, err := ParseProjectID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ProjectID) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Tag == "!!null" {
		*id = 0
		return nil
	}

	parsed, err := ParseProjectID(node.Value)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Project is a portfolio entry shown in the projects grid.
type Project struct {
	ID          ProjectID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Image       string    `json:"image" yaml:"image"`
	Tags        []string  `json:"tags" yaml:"tags"`
	GitHub      *string   `json:"github" yaml:"github"`
	Demo        *string   `json:"demo" yaml:"demo"`
	Date        string    `json:"date" yaml:"date"`
}

// ProjectList is the document shape of both the seed file and the persisted collection.
type ProjectList struct {
	Projects []Project `json:"projects" yaml:"projects"`
}

// ProjectInput carries the editable fields submitted by a form.
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	GitHub      string   `json:"github,omitempty"`
	Demo        string   `json:"demo,omitempty"`
}

// * Validate enforces the fields the form marks as required
func (in ProjectInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Image) == "" {
		missing = append(missing, "image")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseTags splits a comma separated tag field, trimming blanks away.
func ParseTags(raw string) []string {
	return CleanTags(strings.Split(raw, ","))
}

// CleanTags trims every tag and drops the empty ones. The result is never nil.
func CleanTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// * Apply copies the editable fields onto p; id and date are left alone
func (in ProjectInput) Apply(p *Project) {
	p.Title = in.Title
	p.Description = in.Description
	p.Image = in.Image
	p.Tags = append([]string{}, in.Tags...)
	p.GitHub = optional(in.GitHub)
	p.Demo = optional(in.Demo)
}

// * InputOf is the inverse of Apply, used to pre-fill edit forms
func InputOf(p Project) ProjectInput {
	in := ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Tags:        append([]string{}, p.Tags...),
	}
	if p.GitHub != nil {
		in.GitHub = *p.GitHub
	}
	if p.Demo != nil {
		in.Demo = *p.Demo
	}
	return in
}
