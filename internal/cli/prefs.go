package cli

import (
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/spf13/cobra"
)

func (a *app) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or toggle the theme and language flags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			a.printPrefs(prefs.Get(cmd.Context()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			p, err := prefs.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			a.ui.Success("Theme is now %s", p.Theme)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "lang",
		Aliases: []string{"language"},
		Short:   "Switch between Arabic and English",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			p, err := prefs.ToggleLanguage(cmd.Context())
			if err != nil {
				return err
			}
			a.ui.Success("Language is now %s (%s)", p.Language, p.Dir())
			return nil
		},
	})

	return cmd
}

func (a *app) preferences() (*service.PreferenceStore, error) {
	kv, err := a.store()
	if err != nil {
		return nil, err
	}
	return service.NewPreferenceStore(kv), nil
}

func (a *app) printPrefs(p models.Preferences) {
	a.ui.KeyValue("theme", p.Theme)
	a.ui.KeyValue("language", p.Language)
	a.ui.KeyValue("direction", p.Dir())
}
