package main

import (
	"fmt"
	"os"

	"github.com/ethp2p/fft-recovery/ec/field"
	"github.com/ethp2p/fft-recovery/scenario"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("fftrecover")

var Version = "DEV"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "fftrecover"
	app.Usage = "Recover erased samples of a 2-value erasure code with a size-4 Fourier transform"
	app.Version = Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		demoCommand(),
		encodeCommand(),
		recoverCommand(),
		inspectCommand(),
	}
	app.DefaultCommand = "demo"
	return app
}

func setupLogging(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String("log-level"))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.String("log-level"))
	}
	logging.SetAllLoggers(level)
	return nil
}

func domainFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "domain",
		Value: value,
		Usage: fmt.Sprintf("Arithmetic domain (%s, %s)", field.GaussianDomain, field.PrimeDomain),
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Encode a data pair, erase two samples and print every recovery stage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Scenario YAML file",
			},
			&cli.StringFlag{
				Name:  "domain",
				Usage: fmt.Sprintf("Arithmetic domain (%s, %s, both)", field.GaussianDomain, field.PrimeDomain),
			},
			&cli.StringSliceFlag{
				Name:  "data",
				Usage: "The two data values, e.g. 5,7",
			},
			&cli.IntSliceFlag{
				Name:  "erased",
				Usage: "The two erased sample indices, e.g. 1,2",
			},
			&cli.StringFlag{
				Name:  "scale",
				Usage: "Scale factor; must be nonzero and not a 4th root of unity",
			},
			&cli.BoolFlag{
				Name:  "all-patterns",
				Usage: "Recover under every choice of two erased samples",
			},
			&cli.StringFlag{
				Name:  "trace-out",
				Usage: "Write the recovery trace as protobuf to this file",
			},
		},
		Action: demoAction,
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Encode a data pair into four samples",
		Flags: []cli.Flag{
			domainFlag(field.GaussianDomain),
			&cli.StringSliceFlag{
				Name:     "data",
				Usage:    "The two data values, e.g. 5,7",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Output file for the protobuf sample set",
				Required: true,
			},
		},
		Action: encodeAction,
	}
}

func recoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "recover",
		Usage: "Recover the data pair from a sample set with two samples missing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Usage:    "Protobuf sample set written by encode",
				Required: true,
			},
			&cli.IntSliceFlag{
				Name:  "drop",
				Usage: "Additional sample indices to treat as erased",
			},
			&cli.StringFlag{
				Name:  "scale",
				Value: "2",
				Usage: "Scale factor; must be nonzero and not a 4th root of unity",
			},
			&cli.StringFlag{
				Name:  "trace-out",
				Usage: "Write the recovery trace as protobuf to this file",
			},
		},
		Action: recoverAction,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print a protobuf sample set or recovery trace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Usage:    "Protobuf file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "kind",
				Value: "samples",
				Usage: "File kind (samples, trace)",
			},
		},
		Action: inspectAction,
	}
}

// loadScenario reads the scenario from --config, or the default one, and
// applies the command-line overrides
func loadScenario(c *cli.Context) (*scenario.Scenario, error) {
	sc := scenario.Default()
	if path := c.String("config"); path != "" {
		var err error
		sc, err = scenario.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet("domain") {
		sc.Domain = c.String("domain")
	}
	if c.IsSet("data") {
		sc.Data = c.StringSlice("data")
	}
	if c.IsSet("erased") {
		sc.Erased = c.IntSlice("erased")
	}
	if c.IsSet("scale") {
		sc.Scale = c.String("scale")
	}
	if err := sc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	log.Infow("running scenario", "scenario", sc.Description())
	return sc, nil
}
