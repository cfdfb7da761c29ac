package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"renthub/internal/adapters/observability"
	"renthub/internal/adapters/renthub"
	"renthub/internal/adapters/terminal"
	"renthub/internal/app"
	"renthub/internal/domain"
	"renthub/internal/shared"
)

func main() {
	log.Logger = observability.NewCLILogger(false)
	cfg := shared.Load()

	cliApp := &cli.App{
		Name:  "renthub-search",
		Usage: "Search rental listings from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-base-url",
				Usage:   "Base URL of the search backend",
				EnvVars: []string{"RENTHUB_API_BASE_URL"},
				Value:   cfg.APIBaseURL,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for each backend request",
				Value: cfg.APITimeout,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			log.Logger = observability.NewCLILogger(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search listings by location and filters",
				ArgsUsage: "[location]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Locality to search; positional arg is a fallback"},
					&cli.StringFlag{Name: "bhk", Usage: "Bedroom-hall-kitchen count"},
					&cli.StringFlag{Name: "min-rent", Usage: "Minimum monthly rent"},
					&cli.StringFlag{Name: "max-rent", Usage: "Maximum monthly rent"},
				},
				Action: searchAction,
			},
			{
				Name:  "browse",
				Usage: "List the latest listings",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of listings", Value: cfg.BrowseLimit},
				},
				Action: browseAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newForm(c *cli.Context) (*app.SearchForm, error) {
	client, err := renthub.New(c.String("api-base-url"), c.Duration("timeout"), 0)
	if err != nil {
		return nil, err
	}
	return app.NewSearchForm(client), nil
}

// newPage prints the loading view to stderr while a request is in flight.
func newPage() *app.Page {
	return app.NewPage(func(st app.PageState) {
		if st.Loading {
			fmt.Fprintln(os.Stderr, app.RenderResults(nil, true).Heading)
		}
	})
}

func searchAction(c *cli.Context) error {
	form, err := newForm(c)
	if err != nil {
		return err
	}
	location := c.String("location")
	if location == "" && c.NArg() > 0 {
		location = c.Args().First()
	}
	in := domain.FormInput{
		Location: location,
		BHK:      c.String("bhk"),
		MinRent:  c.String("min-rent"),
		MaxRent:  c.String("max-rent"),
	}

	page := newPage()
	form.Submit(c.Context, in, page)
	return finish(c, page)
}

func browseAction(c *cli.Context) error {
	form, err := newForm(c)
	if err != nil {
		return err
	}
	page := newPage()
	log.Debug().Int("limit", c.Int("limit")).Msg("browsing latest listings")
	form.Browse(c.Context, c.Int("limit"), page)
	return finish(c, page)
}

func finish(c *cli.Context, page *app.Page) error {
	st := page.Snapshot()
	if st.Error != "" {
		return cli.Exit(st.Error, 1)
	}
	if c.Bool("json") {
		return terminal.RenderJSON(os.Stdout, st)
	}
	if st.Notice != "" {
		fmt.Println(st.Notice)
		return nil
	}
	return terminal.Render(os.Stdout, page.View())
}
