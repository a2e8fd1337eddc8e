package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/themizzi/saucecheck/internal/browser"
	internalcli "github.com/themizzi/saucecheck/internal/cli"
	"github.com/themizzi/saucecheck/internal/config"
	"github.com/themizzi/saucecheck/internal/logger"
	"github.com/themizzi/saucecheck/internal/models"
	"github.com/themizzi/saucecheck/internal/services"
)

var version = "0.1.0"

// buildCheckService wires the browser launcher, accounts and catalog into a check service
func buildCheckService(log *zap.Logger) (services.CheckService, error) {
	browserConfig, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid browser configuration: %w", err)
	}

	launch, err := browser.NewLauncher(browser.Config{
		Engine:     browserConfig.Engine,
		Name:       browserConfig.Name,
		Headless:   browserConfig.Headless,
		SlowMo:     browserConfig.SlowMo,
		ControlURL: browserConfig.ControlURL,
		Stealth:    browserConfig.Stealth,
	}, log)
	if err != nil {
		return nil, err
	}

	catalog, err := models.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Info("checking storefront",
		zap.String("url", browserConfig.BaseURL),
		zap.String("engine", browserConfig.Engine),
		zap.String("browser", browserConfig.Name))

	return services.NewCheckService(launch, browserConfig.BaseURL, config.LoadCredentials(os.Getenv), catalog, log), nil
}

// CheckCommand returns the check command
func CheckCommand(log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run storefront checks, each in a fresh browser session",
		ArgsUsage: "[check...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "list", Usage: "list the available checks and exit"},
		},
		Action: func(c *cli.Context) error {
			svc, err := buildCheckService(log)
			if err != nil {
				return err
			}
			if c.Bool("list") {
				return internalcli.PrintChecks(c.App.Writer, svc.Checks())
			}

			ctx, cancel := internalcli.WithShutdownSignals(c.Context, nil, log)
			defer cancel()

			return internalcli.RunChecks(ctx, internalcli.RunDependencies{
				Service: svc,
				Out:     c.App.Writer,
			}, c.Args().Slice())
		},
	}
}

// CatalogCommand returns the catalog command
func CatalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the expected product catalog",
		Action: func(c *cli.Context) error {
			catalog, err := models.DefaultCatalog()
			if err != nil {
				return err
			}
			return internalcli.PrintCatalog(c.App.Writer, catalog)
		},
	}
}

// ParseIDCommand returns the parse-id command
func ParseIDCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse-id",
		Usage:     "Explain a product control id",
		ArgsUsage: "<control-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("parse-id takes exactly one control id", 2)
			}
			catalog, err := models.DefaultCatalog()
			if err != nil {
				return err
			}
			return internalcli.PrintDescriptor(c.App.Writer, catalog, c.Args().First())
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	logConfig, err := config.LoadLoggerConfig(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(logConfig.Env, logConfig.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	app := &cli.App{
		Name:    "saucecheck",
		Usage:   "Browser checks for the Sauce Labs demo storefront",
		Version: version,
		Commands: []*cli.Command{
			CheckCommand(zlog),
			CatalogCommand(),
			ParseIDCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		zlog.Error("command failed", zap.Error(err))
		zlog.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
