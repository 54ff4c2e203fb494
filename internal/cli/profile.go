package cli

import (
	"errors"

	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/output"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/spf13/cobra"
)

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Fetch and print the aggregated GitHub profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()
			if cfg.GitHubUsername == "" {
				return errors.New("a GitHub username is required (--username or PORTFOLIO_GITHUB_USERNAME)")
			}

			client := a.github
			if client == nil {
				client = github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
			}

			view, err := service.NewProfileService(client, cfg.GitHubUsername, service.ProfileServiceOptions{}).Refresh(cmd.Context())
			if err != nil {
				return err
			}

			a.ui.KeyValue("name", output.Cyan(view.Name))
			a.ui.KeyValue("bio", view.Bio)
			a.ui.KeyValue("avatar", output.Optional(view.AvatarURL))
			a.ui.KeyValue("repos", view.RepoCount)
			a.ui.KeyValue("followers", view.FollowerCount)
			a.ui.KeyValue("stars", view.StarCount)
			a.ui.KeyValue("forks", view.ForkCount)

			if view.ActivityNotice != "" {
				a.ui.Info("%s", view.ActivityNotice)
				return nil
			}

			table := a.ui.Table([]string{"When", "Activity", "Repository"})
			for _, row := range view.Activity {
				_ = table.Append([]string{
					row.Timestamp + " " + output.Faint("("+row.Ago+")"),
					row.Description,
					row.RepoName,
				})
			}
			return table.Render()
		},
	}
}
