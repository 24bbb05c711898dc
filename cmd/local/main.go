package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jusunglee/signage-go/internal/config"
	"github.com/jusunglee/signage-go/internal/display"
	"github.com/jusunglee/signage-go/internal/logging"
	"github.com/jusunglee/signage-go/internal/timetable"
	"github.com/jusunglee/signage-go/pkg/signage"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "signage-local",
		Usage: "Prints the departure board for a reference time",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "environment file to load instead of .env",
			},
			&cli.StringFlag{
				Name:  "time",
				Usage: "reference time HH:MM (defaults to now)",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "reference date YYYY-MM-DD (defaults to today)",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "timetable file to read instead of the configured source",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of upcoming departures (overrides DISPLAY_COUNT)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "dump the whole board structure",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogFormat, cfg.Debug)

	clientConfig := signage.Config{
		Source:        cfg.TimetableSource,
		Files:         cfg.Files,
		StopsFile:     cfg.StopsFile,
		DisplayCount:  cfg.DisplayCount,
		ClockInterval: cfg.ClockInterval,
		FetchTimeout:  cfg.FetchTimeout,
		TripIdentity:  cfg.TripIdentity,
		Location:      cfg.Location,
	}
	if file := c.String("file"); file != "" {
		// serve the one file for both service types
		name := "/" + filepath.Base(file)
		clientConfig.Source = filepath.Dir(file)
		clientConfig.Files = timetable.TimetableFiles{Weekday: name, Weekend: name}
	}
	if c.IsSet("count") {
		clientConfig.DisplayCount = c.Int("count")
	}

	client, err := signage.NewLocal(clientConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	if c.IsSet("time") || c.IsSet("date") {
		state := client.GetState()
		timeValue, dateValue := state.ReferenceTime, state.ReferenceDate
		if c.IsSet("time") {
			timeValue = c.String("time")
		}
		if c.IsSet("date") {
			dateValue = c.String("date")
		}
		client.ApplyClock(timeValue, dateValue)
	}

	if err := client.Load(context.Background()); err != nil {
		return err
	}

	board, err := client.GetBoard()
	if err != nil {
		return err
	}

	if c.Bool("pretty") {
		pretty.Println(board)
		return nil
	}

	printBoard(board)
	return nil
}

func printBoard(board display.Board) {
	fmt.Printf("%s  %s  [%s]\n", board.DisplayTime, board.DisplayDate, board.Mode)

	for _, card := range []display.NextCard{board.Kami, board.Hachi} {
		platforms := "--"
		if len(card.Platforms) > 0 {
			platforms = strings.Join(card.Platforms, " ")
		}
		fmt.Printf("\n[%s] %s  %s  のりば %s\n", card.Badge, card.Label, card.First, platforms)
	}

	fmt.Println()
	if board.Error != "" {
		fmt.Println(board.Error)
	}
	if board.Message != "" {
		fmt.Println(board.Message)
	}
	for _, d := range board.Upcoming {
		marker := " "
		if d.Soon {
			marker = "*"
		}
		via := ""
		if d.StopsKami {
			via += " 紙経由"
		}
		if d.StopsHachi {
			via += " 八経由"
		}
		fmt.Printf("%s %s  %-3s %3d分  %s%s\n", marker, d.ShortTime(), d.Platform, d.ETA, d.Title, via)
	}

	if len(board.Highlight.Callouts) > 0 {
		fmt.Println()
		for _, callout := range board.Highlight.Callouts {
			fmt.Printf("%s %s (%.2f, %.2f)\n", callout.Label, callout.StopID, callout.X, callout.Y)
		}
	}

	fmt.Printf("\n%s\n", board.InfoLine)
}
