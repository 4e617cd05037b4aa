// Command lotparams generates, projects and inspects parameter files
// for laconic oblivious transfer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	laconicot "github.com/crate-crypto/go-laconic-ot"
	"github.com/crate-crypto/go-laconic-ot/serialization"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "lotparams",
		Usage: "manage laconic OT parameter files",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			log = log.Level(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate fresh full parameters with a locally sampled secret",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "degree",
						Aliases: []string{"k"},
						Usage:   "degree exponent; the vector length is 2^k",
						Value:   10,
					},
					&cli.StringFlag{
						Name:  "backend",
						Usage: "trust model, plain or certified",
						Value: "plain",
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "output file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return generate(c, log)
				},
			},
			{
				Name:  "sender",
				Usage: "project a full parameter file down to its sender-side form",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "full parameter file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "output file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return project(c, log)
				},
			},
			{
				Name:  "inspect",
				Usage: "print the header of a parameter file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "parameter file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return inspect(c, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func parseBackend(name string) (laconicot.Backend, error) {
	switch name {
	case "plain":
		return laconicot.Plain, nil
	case "certified":
		return laconicot.Certified, nil
	default:
		return 0, fmt.Errorf("unknown backend %q, want plain or certified", name)
	}
}

func generate(c *cli.Context, log zerolog.Logger) error {
	degree := c.Uint("degree")
	if degree > 31 {
		return fmt.Errorf("degree exponent %d is too large", degree)
	}
	backend, err := parseBackend(c.String("backend"))
	if err != nil {
		return err
	}

	log.Info().
		Uint("degree", degree).
		Stringer("backend", backend).
		Msg("generating parameters")
	start := time.Now()

	params, err := laconicot.Setup(uint8(degree), backend)
	if err != nil {
		return err
	}
	blob, err := params.Encode()
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Int("bytes", len(blob)).Msg("parameters ready")

	return os.WriteFile(c.String("out"), blob, 0o644)
}

func project(c *cli.Context, log zerolog.Logger) error {
	blob, err := os.ReadFile(c.String("in"))
	if err != nil {
		return err
	}
	params, err := laconicot.DecodeParams(blob)
	if err != nil {
		return err
	}

	senderBlob, err := params.SenderParams().Encode()
	if err != nil {
		return err
	}
	log.Info().
		Int("full_bytes", len(blob)).
		Int("sender_bytes", len(senderBlob)).
		Msg("projected parameters")

	return os.WriteFile(c.String("out"), senderBlob, 0o644)
}

func inspect(c *cli.Context, log zerolog.Logger) error {
	blob, err := os.ReadFile(c.String("in"))
	if err != nil {
		return err
	}
	file, err := serialization.DecodeParamsFile(blob)
	if err != nil {
		return err
	}

	form := "full"
	if file.Form == serialization.FormSender {
		form = "sender"
	}
	backend := "plain"
	if file.Backend == serialization.BackendCertified {
		backend = "certified"
	}

	log.Info().
		Str("form", form).
		Str("backend", backend).
		Uint8("degree", file.DegreeExp).
		Uint64("num_bits", 1<<file.DegreeExp).
		Int("bytes", len(blob)).
		Msg("parameter file")
	return nil
}
