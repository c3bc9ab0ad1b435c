package main

import (
	"github.com/spf13/cobra"

	"github.com/vrsandeep/mango-easyyomi/internal/core"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
)

var defaultOpenApp = core.New

// cli carries the state shared by every subcommand.
type cli struct {
	suffix  string
	openApp func() (*core.App, error)
}

func newRootCmd(openApp func() (*core.App, error)) *cobra.Command {
	c := &cli{openApp: openApp}

	rootCmd := &cobra.Command{
		Use:           "easyyomi-cli",
		Short:         "Browse an Easyyomi comics server",
		Long:          "List, search and read series from the Easyyomi servers configured for this host",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&c.suffix, "suffix", "s", "", "source instance suffix (\"\", \"2\", \"3\", ...)")

	rootCmd.AddCommand(
		c.sourcesCmd(),
		c.idCmd(),
		c.popularCmd(),
		c.latestCmd(),
		c.searchCmd(),
		c.detailsCmd(),
		c.chaptersCmd(),
		c.pagesCmd(),
		c.settingsCmd(),
	)
	return rootCmd
}

// withSource opens the app, builds the selected source instance and hands it
// to fn. The app is closed when fn returns.
func (c *cli) withSource(fn func(src *easyyomi.Easyyomi) error) error {
	app, err := c.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	src, err := easyyomi.New(c.suffix, app.SourceOptions())
	if err != nil {
		return err
	}
	return fn(src)
}
