package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func (a *app) shareCmd() *cobra.Command {
	var tokenOnly bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link to the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			var out string
			if tokenOnly {
				out, err = s.ShareToken()
			} else {
				out, err = s.ShareURL()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tokenOnly, "token", false, "print the bare token instead of a link")
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <link|token>",
		Short: "Replace the stored form with a shared one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.LoadLink(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d fields\n", s.List().Len())
			return nil
		},
	}
}

func (a *app) templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available form templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tpl := range catalog.List() {
				fmt.Fprintf(out, "%-24s %2d fields  %s\n", tpl.Name, len(tpl.Fields), tpl.Description)
			}
			return nil
		},
	}
}

func (a *app) applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <template>",
		Short: "Replace the stored form with a template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ApplyTemplate(strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %q: %d fields\n", strings.Join(args, " "), s.List().Len())
			return nil
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every field of the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("clear removes the stored form; pass --yes to confirm")
			}
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			s.Clear()
			printNotices(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing the form")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the values held by the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.Validate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "%s: %s\n", issue.Label, issue.Message)
			}
			if !result.Valid {
				return fmt.Errorf("%d fields failed validation", len(result.Issues))
			}
			fmt.Fprintln(out, "All fields valid")
			return nil
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a submission of the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := json.MarshalIndent(validation.FormSchema(s.List()), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
