package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// environment is shared by every command of one process. In the shell, sess
// is already open and every line reuses it.
type environment struct {
	out  io.Writer
	in   io.Reader
	cfg  *config.Config
	log  *logrus.Entry
	sess *session
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(&environment{out: os.Stdout, in: os.Stdin})
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func newApp(env *environment) *cli.App {
	return &cli.App{
		Name:        "storefront",
		Usage:       "drive a storefront session: catalog, cart, promo codes and wishlist",
		HideVersion: true,
		Writer:      env.out,
		ErrWriter:   env.out,
		Reader:      env.in,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "storage", Usage: "storage backend: memory, file, redis or mongo"},
			&cli.StringFlag{Name: "storage-path", Usage: "document used by the file backend"},
			&cli.StringFlag{Name: "catalog", Usage: "YAML catalog file"},
			&cli.StringFlag{Name: "catalog-db", Usage: "SQLite catalog database, created if missing"},
			&cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
		},
		Before: env.configure,
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return fmt.Errorf("unknown command %q", c.Args().First())
			}
			return cli.ShowAppHelp(c)
		},
		// errors are reported by the caller; never exit from inside the shell
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			productsCommand(env),
			productCommand(env),
			cartCommand(env),
			promoCommand(env),
			wishlistCommand(env),
			navigateCommand(env),
			viewCommand(env),
			searchCommand(env),
			openCommand(env),
			whereCommand(env),
			darkCommand(env),
			compareCommand(env),
			newsletterCommand(env),
			shellCommand(env),
		},
	}
}

// configure loads the environment configuration once and applies flag
// overrides on top of it.
func (env *environment) configure(c *cli.Context) error {
	if env.cfg != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("storage") {
		cfg.StorageBackend = c.String("storage")
	}
	if c.IsSet("storage-path") {
		cfg.StoragePath = c.String("storage-path")
	}
	if c.IsSet("catalog") {
		cfg.CatalogFile = c.String("catalog")
	}
	if c.IsSet("catalog-db") {
		cfg.CatalogDB = c.String("catalog-db")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	env.cfg = cfg
	env.log = logrus.NewEntry(cfg.NewLogger())
	return nil
}
