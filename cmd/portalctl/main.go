// Command portalctl inspects the stored lists of one visitor: it can export
// them as a zip archive of JSON files or clear them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"connectong/internal/adapter/kv"
	"connectong/internal/adapter/repo"
	"connectong/internal/infra"
	"connectong/pkg/zip"
)

func main() {
	var (
		visitorFlag string
		exportFlag  string
		clearFlag   bool
	)

	flag.StringVar(&visitorFlag, "visitor", "", "visitor id (value of the visitor cookie)")
	flag.StringVar(&exportFlag, "export", "", "write the visitor's lists to this zip file")
	flag.BoolVar(&clearFlag, "clear", false, "delete every list of the visitor (after export, if both are given)")
	flag.Parse()

	_ = godotenv.Load()

	visitor := strings.TrimSpace(visitorFlag)
	if _, err := uuid.Parse(visitor); err != nil {
		exitWithError(errors.New("-visitor must be a visitor id (UUID)"))
	}
	if exportFlag == "" && !clearFlag {
		exitWithError(errors.New("nothing to do: pass -export and/or -clear"))
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "portalctl").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, closeStore, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		exitWithError(fmt.Errorf("open store: %w", err))
	}
	defer closeStore()
	store := repo.NewPortalStore(backend).ForVisitor(visitor)

	if exportFlag != "" {
		n, err := export(ctx, store, exportFlag)
		if err != nil {
			exitWithError(err)
		}
		logger.Info().Str("visitor", visitor).Str("file", exportFlag).Int("lists", n).Msg("export written")
	}
	if clearFlag {
		if err := store.Clear(ctx); err != nil {
			exitWithError(err)
		}
		logger.Info().Str("visitor", visitor).Msg("visitor lists cleared")
	}
}

// export writes one <key>.json entry per stored key, in key order.
func export(ctx context.Context, store *repo.PortalStore, path string) (int, error) {
	raw, err := store.Export(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	entries := make([]zip.Entry, 0, len(raw))
	for _, key := range repo.Keys {
		if data, ok := raw[key]; ok {
			entries = append(entries, zip.Entry{Name: key + ".json", Data: data, Modified: now})
		}
	}
	archive, err := zip.Archive(entries)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, archive, 0o600); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(entries), nil
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "portalctl: %v\n", err)
	os.Exit(1)
}
