// catalogscanner scans a catalog video or screenshot and prints the items.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/lmittmann/tint"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	"github.com/Nachtalb/CatalogScanner/internal/config"
	"github.com/Nachtalb/CatalogScanner/internal/locale"
	"github.com/Nachtalb/CatalogScanner/internal/rpc"
)

type args struct {
	Media   string       `arg:"positional,required" help:"the media file to scan; use a %d pattern for numbered frames"`
	Locale  string       `arg:"-l,--locale" help:"the locale to use for parsing item names, or auto"`
	ForSale bool         `arg:"--for-sale" help:"skip items that are not for sale"`
	Mode    catalog.Mode `arg:"-m,--mode" help:"the type of catalog to scan; auto tries to detect from the media frames"`
	Remote  string       `arg:"--remote" help:"scan on a catalog server at this gRPC address instead of locally"`
	JSON    bool         `arg:"--json" help:"print the result as JSON"`
	Verbose bool         `arg:"-v,--verbose" help:"log pipeline progress"`
}

func (args) Description() string {
	return "Scans Animal Crossing catalog recordings into item lists.\nLocales: " +
		strings.Join(append([]string{locale.Auto}, locale.Supported()...), ", ")
}

// scanner is satisfied by a local catalog.Scanner and a remote rpc.Client.
type scanner interface {
	ScanMedia(ctx context.Context, path string, opts catalog.Options) (*catalog.Result, error)
}

func main() {
	cfg := config.Load()

	a := args{Locale: cfg.Locale, ForSale: cfg.ForSale}
	arg.MustParse(&a)

	level := slog.LevelWarn
	if a.Verbose {
		level = cfg.Level()
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})))

	var s scanner = catalog.FromConfig(cfg)
	if a.Remote != "" {
		client, err := rpc.Dial(a.Remote)
		if err != nil {
			slog.Error("failed to connect to catalog server", "addr", a.Remote, "error", err)
			os.Exit(1)
		}
		defer func() { _ = client.Close() }()
		s = client
	}

	res, err := s.ScanMedia(context.Background(), a.Media, catalog.Options{
		Mode:    a.Mode,
		Locale:  a.Locale,
		ForSale: a.ForSale,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if a.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		return
	}
	fmt.Printf("Found %d items in %s [%s]\n", len(res.Items), res.Mode, res.Locale)
	fmt.Println(strings.Join(res.Items, "\n"))
}
