package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/mango-easyyomi/internal/settings"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
)

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings of a source instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				screen := src.PreferenceScreen()
				t := newTable("Key", "Value", "Summary")
				for _, f := range screen.Fields() {
					value := mutedStyle.Render("hidden")
					if f.InputType != settings.InputPassword {
						v, err := screen.Value(f.Key)
						if err != nil {
							return err
						}
						value = v
					}
					t.Row(f.Key, value, f.Summary)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
	cmd.AddCommand(c.settingsSetCmd())
	return cmd
}

func (c *cli) settingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change a setting of a source instance",
		Long:  "Change a setting of a source instance. An empty value resets the setting.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				screen := src.PreferenceScreen()
				if screen.Field(args[0]) == nil {
					return fmt.Errorf("unknown setting %q", args[0])
				}
				notice, err := screen.Submit(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render(notice))
				return nil
			})
		},
	}
}
