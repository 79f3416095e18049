// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/etnz/pfm"
	"github.com/etnz/pfm/renderer"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&addCmd{},
	&txCmd{},
	&totalsCmd{},
	&categoriesCmd{},
	&monthlyCmd{},
	&editCmd{},
	&rmCmd{},
	&importCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables. Each flag falls back to its environment variable,
// loaded from an optional .env file before the flags are registered.
var (
	backendURL *string
	dataDir    *string
	ledgerKey  *string
	currency   *string
)

func init() {
	godotenv.Load()
	backendURL = flag.String("backend-url", os.Getenv("PFM_BACKEND_URL"), "Base URL of the object store holding the ledger (env PFM_BACKEND_URL). Empty means local files.")
	dataDir = flag.String("data-dir", envOr("PFM_DATA_DIR", "."), "Directory holding the ledger file when no backend URL is set (env PFM_DATA_DIR)")
	ledgerKey = flag.String("key", envOr("PFM_LEDGER_KEY", "ledger.csv"), "Key (file name) of the ledger blob (env PFM_LEDGER_KEY)")
	currency = flag.String("currency", envOr("PFM_CURRENCY", "EUR"), "Currency code used to display amounts (env PFM_CURRENCY)")
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func newBackend() pfm.Backend {
	if *backendURL != "" {
		return pfm.NewHTTPBackend(*backendURL)
	}
	return pfm.NewFileBackend(*dataDir)
}

// NewStore is the central function to open the ledger store.
func NewStore() *pfm.Store {
	return pfm.NewStore(newBackend(), *ledgerKey)
}

// LoadLedger loads the ledger, creating an empty one when none exists yet.
func LoadLedger(ctx context.Context, store *pfm.Store) (*pfm.Ledger, error) {
	ledger, err := store.Load(ctx)
	if errors.Is(err, pfm.ErrKeyNotFound) {
		log.Println("warning, ledger does not exist, creating an empty one instead")
		if err := pfm.CreateLedger(ctx, newBackend(), *ledgerKey); err != nil {
			return nil, err
		}
		return store.Load(ctx)
	}
	return ledger, err
}

func rendererOptions() renderer.Options {
	return renderer.Options{Currency: *currency}
}
