// Command voyena is the maintenance CLI for the Voyena data layer.
//
// Usage:
//
//	voyena init             create the database and run migrations
//	voyena stats            print row counts per table
//	voyena export [file]    write a JSON backup (stdout by default)
//	voyena import <file>    replace the database from a JSON backup
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voyena/voyena-core/internal/config"
	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/commands"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "voyena:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: voyena <init|stats|export|import> [args]")
	}

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	app := commands.New(st, logger)

	switch args[0] {
	case "init":
		// Open already created the schema and ran migrations.
		fmt.Println("database ready at", cfg.DatabasePath())
		return nil

	case "stats":
		stats, err := app.GetStats()
		if err != nil {
			return err
		}
		fmt.Printf("notes        %d\n", stats.Notes)
		fmt.Printf("folders      %d\n", stats.Folders)
		fmt.Printf("events       %d\n", stats.Events)
		fmt.Printf("brain maps   %d\n", stats.BrainMaps)
		fmt.Printf("nodes        %d\n", stats.Nodes)
		fmt.Printf("connections  %d\n", stats.Connections)
		return nil

	case "export":
		data, err := app.ExportData()
		if err != nil {
			return err
		}
		if len(args) > 1 {
			return os.WriteFile(args[1], data, 0o644)
		}
		_, err = os.Stdout.Write(data)
		return err

	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: voyena import <file>")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		return app.ImportData(data)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
