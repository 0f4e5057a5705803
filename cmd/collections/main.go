// Command collections inspects and edits a visitor's cart and favorites
// stored in a local SQLite file.
//
//	collections [-db path] [-visitor id] cart list|add|remove|qty|clear ...
//	collections [-db path] [-visitor id] favorites list|add|remove|toggle|clear ...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/app/session"
	cartmapper "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
	favmapper "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/http/mapper"
	favports "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/sqlitekv"
)

const defaultVisitor = "local"

var errUsage = errors.New("usage: collections [-db path] [-visitor id] cart|favorites <command> [args]")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("collections", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "collections.db", "SQLite database file")
	visitor := fs.String("visitor", defaultVisitor, "visitor whose collections are edited")
	verbose := fs.Bool("v", false, "log storage activity to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return errUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := sqlitekv.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	provider, err := session.NewProvider(ctx, *visitor, session.Deps{Store: store, Logger: logger, ToastTTL: time.Millisecond})
	if err != nil {
		return err
	}
	defer provider.Close()

	switch rest[0] {
	case "cart":
		return runCart(ctx, provider.Cart(), rest[1], rest[2:], stdout)
	case "favorites":
		return runFavorites(ctx, provider.Favorites(), rest[1], rest[2:], stdout)
	default:
		return errUsage
	}
}

func runCart(ctx context.Context, svc cartports.Service, cmd string, args []string, out io.Writer) error {
	var (
		proj *cartports.CartProjection
		err  error
	)
	switch cmd {
	case "list":
		proj, err = svc.Snapshot(ctx)
	case "add":
		// add <id> <name> <price> [quantity] [discount]
		if len(args) < 3 {
			return errors.New("usage: cart add <id> <name> <price> [quantity] [discount]")
		}
		input := cartports.AddItemInput{ProductID: args[0], Name: args[1], Quantity: 1}
		if input.Price, err = decimal.NewFromString(args[2]); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		if len(args) > 3 {
			if input.Quantity, err = strconv.Atoi(args[3]); err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
		}
		if len(args) > 4 {
			if input.Discount, err = decimal.NewFromString(args[4]); err != nil {
				return fmt.Errorf("discount: %w", err)
			}
		}
		proj, err = svc.Add(ctx, input)
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: cart remove <id>")
		}
		proj, err = svc.Remove(ctx, args[0])
	case "qty":
		if len(args) != 2 {
			return errors.New("usage: cart qty <id> <quantity>")
		}
		quantity, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("quantity: %w", convErr)
		}
		proj, err = svc.UpdateQuantity(ctx, args[0], quantity)
	case "clear":
		proj, err = svc.Clear(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	return writeJSON(out, cartmapper.FromProjection(proj))
}

func runFavorites(ctx context.Context, svc favports.Service, cmd string, args []string, out io.Writer) error {
	var (
		proj *favports.FavoritesProjection
		err  error
	)
	switch cmd {
	case "list":
		proj, err = svc.Snapshot(ctx)
	case "add", "toggle":
		// add <id> [title] [nightly rate]
		if len(args) < 1 {
			return fmt.Errorf("usage: favorites %s <id> [title] [nightly-rate]", cmd)
		}
		input := favports.AddInput{ServiceID: args[0]}
		if len(args) > 1 {
			input.Title = args[1]
		}
		if len(args) > 2 {
			if input.NightlyRate, err = decimal.NewFromString(args[2]); err != nil {
				return fmt.Errorf("nightly rate: %w", err)
			}
		}
		if cmd == "add" {
			proj, err = svc.Add(ctx, input)
		} else {
			_, proj, err = svc.Toggle(ctx, input)
		}
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: favorites remove <id>")
		}
		proj, err = svc.Remove(ctx, args[0])
	case "clear":
		proj, err = svc.Clear(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	return writeJSON(out, favmapper.FromProjection(proj))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
