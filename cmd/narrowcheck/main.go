// Package main is the narrowcheck command, which runs the collision checks described by scenario files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/solarlune/narrowphase/internal/logging"
	"github.com/solarlune/narrowphase/scenario"
)

const (
	flagLogLevel       = "log-level"
	flagFailOnMismatch = "fail-on-mismatch"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	var logger *zap.Logger

	return &cli.App{
		Name:  "narrowcheck",
		Usage: "run collision checks between the bodies of a scenario file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			logger, err = logging.New(c.String(flagLogLevel))
			return err
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run every check of a scenario, printing the results",
				ArgsUsage: "<scenario.yaml>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagFailOnMismatch,
						Usage: "exit with an error if any check doesn't give its expected result",
					},
				},
				Action: func(c *cli.Context) error {
					return runCommand(c, logger)
				},
			},
			{
				Name:      "validate",
				Usage:     "check a scenario file for problems without running it",
				ArgsUsage: "<scenario.yaml>",
				Action: func(c *cli.Context) error {
					conf, err := loadScenario(c)
					if err != nil {
						return err
					}
					if err := conf.Validate(); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s: %d bodies, %d checks\n", c.Args().First(), len(conf.Bodies), len(conf.Checks))
					return nil
				},
			},
		},
	}

}

func loadScenario(c *cli.Context) (*scenario.Config, error) {

	if c.NArg() != 1 {
		return nil, errors.New("expected exactly one scenario file")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, errors.Wrap(err, "opening scenario")
	}
	defer f.Close()

	return scenario.Load(f)

}

func runCommand(c *cli.Context, logger *zap.Logger) error {

	conf, err := loadScenario(c)
	if err != nil {
		return err
	}

	s, err := conf.Build(
		scenario.WithBaseDir(filepath.Dir(c.Args().First())),
		scenario.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	mismatches := 0

	for _, result := range s.Run() {

		status := "ok"
		if !result.Matched() {
			status = "MISMATCH"
			mismatches++
		}

		fmt.Fprintf(c.App.Writer, "%-8s %-18s %-30s hit=%t\n", status, result.Check.Test, result.Check.Name, result.Hit)

		if result.Contact != nil {
			logger.Info("contact",
				zap.String("check", result.Check.Name),
				zap.Stringer("kind", result.Contact.Kind),
				zap.Int("triangle", result.Contact.Triangle),
				logging.Vector("point", result.Contact.Point),
				logging.Vector("normal", result.Contact.Normal),
			)
		}

		if !result.Matched() {
			logger.Warn("unexpected result", zap.String("check", result.Check.Name), zap.Boolp("expected", result.Check.Expect), zap.Bool("hit", result.Hit))
		}

	}

	if mismatches > 0 && c.Bool(flagFailOnMismatch) {
		return cli.Exit(fmt.Sprintf("%d check(s) didn't match their expected result", mismatches), 2)
	}

	return nil

}
