package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/sources/easyyomi"
)

func (c *cli) sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured source instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			created, err := app.CreateSources()
			if err != nil {
				return err
			}

			t := newTable("ID", "Name", "Address")
			for _, src := range created {
				info := src.Info()
				address := ""
				if e, ok := src.(*easyyomi.Easyyomi); ok {
					address = e.BaseURL()
				}
				if address == "" {
					address = mutedStyle.Render("not configured")
				}
				t.Row(strconv.FormatInt(info.ID, 10), info.Name, address)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func (c *cli) idCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id [suffix]",
		Short: "Print the source ID derived for a suffix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			suffix := c.suffix
			if len(args) == 1 {
				suffix = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), easyyomi.DeriveID(suffix, app.Config.Source.VersionID))
			return nil
		},
	}
}

func (c *cli) popularCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "List every series on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				page, err := src.FetchPopular(cmd.Context(), 1)
				if err != nil {
					return fmt.Errorf("popular failed: %w", err)
				}
				printMangas(cmd, page)
				return nil
			})
		},
	}
}

func (c *cli) latestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "List the latest series on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				page, err := src.FetchLatest(cmd.Context(), 1)
				if err != nil {
					return fmt.Errorf("latest failed: %w", err)
				}
				printMangas(cmd, page)
				return nil
			})
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search series by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				page, err := src.Search(cmd.Context(), 1, query, src.Filters())
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				printMangas(cmd, page)
				return nil
			})
		},
	}
}

func (c *cli) detailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details [title]",
		Short: "Show the details of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				manga, err := src.FetchDetails(cmd.Context(), models.Manga{Title: args[0]})
				if err != nil {
					return fmt.Errorf("details failed: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, titleStyle.Render(manga.Title))
				if manga.Description != "" {
					fmt.Fprintln(out, manga.Description)
				}
				return nil
			})
		},
	}
}

func (c *cli) chaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters [title]",
		Short: "List the chapters of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				chapters, err := src.FetchChapters(cmd.Context(), models.Manga{Title: args[0]})
				if err != nil {
					return fmt.Errorf("chapters failed: %w", err)
				}
				if len(chapters) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No chapters found.")
					return nil
				}
				t := newTable("#", "Chapter")
				for i, ch := range chapters {
					t.Row(strconv.Itoa(i+1), ch.Name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func (c *cli) pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages [series] [chapter]",
		Short: "List the page image URLs of a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSource(func(src *easyyomi.Easyyomi) error {
				pages, err := src.FetchPages(cmd.Context(), models.Chapter{URL: args[0], Name: args[1]})
				if err != nil {
					return fmt.Errorf("pages failed: %w", err)
				}
				t := newTable("Page", "Image URL")
				for _, p := range pages {
					t.Row(strconv.Itoa(p.Index), p.ImageURL)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func printMangas(cmd *cobra.Command, page *models.MangasPage) {
	if len(page.Mangas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return
	}
	t := newTable("#", "Title")
	for i, m := range page.Mangas {
		t.Row(strconv.Itoa(i+1), m.Title)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t)
}
