package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mester2001/portfolio/internal/format"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/output"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/Mester2001/portfolio/internal/web"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/spf13/cobra"
)

type projectFlags struct {
	title       string
	description string
	image       string
	tags        string
	github      string
	demo        string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Project title")
	cmd.Flags().StringVar(&f.description, "description", "", "Project description")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&f.github, "github", "", "Source link (optional)")
	cmd.Flags().StringVar(&f.demo, "demo", "", "Demo link (optional)")
}

// * apply overwrites only the fields whose flag was given on the command line
func (f *projectFlags) apply(cmd *cobra.Command, in *models.ProjectInput) {
	changed := cmd.Flags().Changed
	if changed("title") {
		in.Title = f.title
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("image") {
		in.Image = f.image
	}
	if changed("tags") {
		in.Tags = models.ParseTags(f.tags)
	}
	if changed("github") {
		in.GitHub = f.github
	}
	if changed("demo") {
		in.Demo = f.demo
	}
}

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage portfolio projects",
	}

	cmd.AddCommand(a.projectsListCmd())
	cmd.AddCommand(a.projectsAddCmd())
	cmd.AddCommand(a.projectsEditCmd())
	cmd.AddCommand(a.projectsDeleteCmd())
	cmd.AddCommand(a.projectsImportCmd())
	return cmd
}

func (a *app) projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.projectStore(cmd.Context())
			if err != nil {
				return err
			}

			projects := store.List()
			if len(projects) == 0 {
				a.ui.Info(web.NoProjectsText)
				return nil
			}

			table := a.ui.Table([]string{"ID", "Title", "Tags", "Date", "GitHub", "Demo"})
			for _, p := range projects {
				_ = table.Append([]string{
					output.Cyan(p.ID.String()),
					p.Title,
					strings.Join(p.Tags, ", "),
					format.ISODate(p.Date),
					output.Optional(deref(p.GitHub)),
					output.Optional(deref(p.Demo)),
				})
			}
			return table.Render()
		},
	}
}

func (a *app) projectsAddCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project at the top of the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, _, err := a.projectStore(ctx)
			if err != nil {
				return err
			}

			var in models.ProjectInput
			flags.apply(cmd, &in)
			if err := in.Validate(); err != nil {
				return err
			}

			p := store.Create(ctx, in)
			if err := store.Persist(ctx); err != nil {
				return fmt.Errorf("save projects: %w", err)
			}

			a.ui.Success("Added project %s (%s)", output.Cyan(p.ID.String()), p.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) projectsEditCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a project",
		Long:  "Change the given fields of a project. Fields without a flag keep their value; the id and date never change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := models.ParseProjectID(args[0])
			if err != nil {
				return err
			}

			store, _, err := a.projectStore(ctx)
			if err != nil {
				return err
			}

			existing, ok := store.Get(id)
			if !ok {
				return fmt.Errorf("no project with id %s", id)
			}

			in := models.InputOf(existing)
			flags.apply(cmd, &in)
			if err := in.Validate(); err != nil {
				return err
			}

			p, err := store.Update(ctx, id, in)
			if err != nil {
				return err
			}
			if err := store.Persist(ctx); err != nil {
				return fmt.Errorf("save projects: %w", err)
			}

			a.ui.Success("Updated project %s (%s)", output.Cyan(p.ID.String()), p.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) projectsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project (requires --yes)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := models.ParseProjectID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				a.ui.Warning("%s", service.DeleteConfirmationText)
				a.ui.Info("Re-run with %s to delete project %s", output.Yellow("--yes"), id)
				return nil
			}

			store, repo, err := a.projectStore(ctx)
			if err != nil {
				return err
			}
			if err := a.ensureStored(ctx, store, repo); err != nil {
				return err
			}

			removed, err := repo.Remove(ctx, id)
			if err != nil {
				return fmt.Errorf("save projects: %w", err)
			}
			if removed == 0 {
				return errors.NotFound(errors.RefProjectNotFound, "Project not found", fmt.Sprintf("No project with id %s", id))
			}

			a.ui.Success("Deleted %d project(s) with id %s", removed, output.Cyan(id.String()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func (a *app) projectsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON or YAML project document into storage",
		Long:  "Merge a JSON or YAML project document into storage. Projects with a known id replace the stored one, new ids are added on top.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projects, err := service.LoadSeed(args[0])
			if err != nil {
				return err
			}

			store, repo, err := a.projectStore(ctx)
			if err != nil {
				return err
			}
			if err := a.ensureStored(ctx, store, repo); err != nil {
				return err
			}
			if n := service.AssignMissingIDs(projects, store.List(), time.Now()); n > 0 {
				a.ui.Warning("Gave %d project(s) without an id a fresh one", n)
			}

			// * reversed so the document's first entry ends up on top
			for i := len(projects) - 1; i >= 0; i-- {
				a.ui.VerboseLog("importing %s (%s)", projects[i].ID, projects[i].Title)
				if err := repo.Upsert(ctx, projects[i]); err != nil {
					return err
				}
			}

			a.ui.Success("Imported %d project(s) from %s", len(projects), args[0])
			return nil
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
