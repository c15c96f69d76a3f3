package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/theme"
)

func (a *app) themeCmd() *cobra.Command {
	var (
		variant string
		toggle  bool
	)
	cmd := &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or change the preview theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			switch {
			case toggle:
				err = s.ToggleVariant(cmd.Context())
			case len(args) == 1 || variant != "":
				name := s.Prefs().Theme
				if len(args) == 1 {
					name = args[0]
				}
				err = s.SetTheme(cmd.Context(), name, variant)
			}
			if err != nil {
				return err
			}
			cfg, err := s.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", cfg.Theme, cfg.Variant)
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "variant: "+theme.VariantLight+" or "+theme.VariantDark)
	cmd.Flags().BoolVar(&toggle, "toggle", false, "switch between light and dark")
	return cmd
}
