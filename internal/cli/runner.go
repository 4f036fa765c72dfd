package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/foodie/internal/auth"
	"github.com/idilsaglam/foodie/internal/backend"
	"github.com/idilsaglam/foodie/internal/catalog"
	"github.com/idilsaglam/foodie/internal/config"
	"github.com/idilsaglam/foodie/internal/order"
	"github.com/idilsaglam/foodie/internal/screen"
	"github.com/idilsaglam/foodie/internal/store/jsonstore"
	"github.com/idilsaglam/foodie/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	EnvFile string // optional .env path
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "show", "item":
		if len(a) != 1 {
			ui.Fail("usage: foodie " + cmd + " <id>")
			return 2
		}
		id, err := strconv.Atoi(a[0])
		if err != nil || id <= 0 {
			ui.Fail(cmd + ": not a valid id: " + a[0])
			return 2
		}
		if cmd == "show" {
			return doShow(id, opt)
		}
		return doItem(id, opt)

	case "serve":
		if len(a) != 0 {
			ui.Fail("usage: foodie serve")
			return 2
		}
		return doServe(opt)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: foodie auth <login|logout|status>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAuthLogin(opt)
		case "logout":
			return doAuthLogout()
		case "status":
			return doAuthStatus(opt)
		default:
			ui.Fail("usage: foodie auth <login|logout|status>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`foodie - order a dish from the terminal

Usage:
  foodie [-env file] [-theme classic|neon|mono] <subcommand> [args]

Subcommands:
  show <id>                      Open the dish screen (add-ons, quantity, favorite, order)
  item <id>                      Print the dish card and exit
  serve                          Run the local catalog API backed by a JSON file
  auth <login|logout|status>     Manage the API token

Examples:
  foodie serve
  foodie show 1
  FOODIE_API_URL=http://localhost:3333 foodie item 2
`)
}

// -------------- subcommand impls ----------------

// session is what show and item share: config, logger, composer.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	composer *order.Composer
}

func newSession(opt Options) (*session, error) {
	cfg, err := config.Load(opt.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := cfg.NewLogger(true)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	creds, err := auth.Resolve(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	clientOpts := []catalog.ClientOption{catalog.WithLogger(log)}
	if creds != nil {
		clientOpts = append(clientOpts, catalog.WithToken(creds.Token))
	}
	client := catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout, clientOpts...)
	return &session{
		cfg:      cfg,
		log:      log,
		composer: order.NewComposer(client, order.WithLogger(log)),
	}, nil
}

func doShow(id int, opt Options) int {
	s, err := newSession(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer func() { _ = s.log.Sync() }()

	m := screen.New(screen.Options{
		ItemID:    id,
		Composer:  s.composer,
		Favorites: order.NewFavoriteSync(s.composer, order.WithRollback(s.cfg.Favorite.Rollback)),
		Price:     s.cfg.Price,
		Timeout:   s.cfg.API.Timeout,
		Logger:    s.log,
	})
	final, err := screen.Run(m)
	if err != nil {
		ui.Fail("screen: " + err.Error())
		return 1
	}
	if ack, ok := final.LastOrder(); ok {
		msg := "order placed"
		if ack.ID != "" {
			msg += " #" + ack.ID
		}
		ui.OK(msg)
	}
	return 0
}

func doItem(id int, opt Options) int {
	s, err := newSession(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer func() { _ = s.log.Sync() }()

	if err := s.composer.Load(context.Background(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			ui.Fail(fmt.Sprintf("dish %d not found", id))
			return 1
		}
		ui.Fail("load: " + err.Error())
		return 1
	}
	ui.Panel(cardLines(s.composer.Snapshot(), s.cfg.Price))
	return 0
}

func doServe(opt Options) int {
	cfg, err := config.Load(opt.EnvFile)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	log, err := cfg.NewLogger(false)
	if err != nil {
		ui.Fail("logger: " + err.Error())
		return 1
	}
	defer func() { _ = log.Sync() }()

	var serverOpts []backend.Option
	serverOpts = append(serverOpts, backend.WithLogger(log))
	if tok, ok := auth.FromEnv(); ok {
		serverOpts = append(serverOpts, backend.WithToken(tok))
	}
	srv := backend.New(jsonstore.New[backend.Database](cfg.Backend.DBPath), serverOpts...)
	if err := srv.EnsureSeeded(); err != nil {
		ui.Fail(err.Error())
		return 1
	}

	hs := &http.Server{
		Addr:              cfg.Backend.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info("catalog listening", zap.String("addr", cfg.Backend.Addr), zap.String("db", cfg.Backend.DBPath))

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			ui.Fail("serve: " + err.Error())
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			ui.Fail("shutdown: " + err.Error())
			return 1
		}
		log.Info("catalog stopped")
	}
	return 0
}

func doAuthLogin(opt Options) int {
	cfg, err := config.Load(opt.EnvFile)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	fmt.Printf("Paste your token for %s: ", cfg.API.BaseURL)
	var token string
	if _, err := fmt.Scanln(&token); err != nil {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if err := auth.Save(token, cfg.API.BaseURL); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func doAuthLogout() int {
	if _, ok := auth.FromEnv(); ok {
		ui.OK("token is provided by " + auth.EnvToken + " (nothing to delete)")
		return 0
	}
	if err := auth.Forget(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doAuthStatus(opt Options) int {
	cfg, err := config.Load(opt.EnvFile)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	creds, err := auth.Resolve(cfg.API.BaseURL)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	fmt.Printf("api: %s\n", cfg.API.BaseURL)
	if creds == nil {
		fmt.Println(ui.Current().Muted.Render("not logged in"))
		fmt.Println("Run: foodie auth login")
		return 0
	}
	fmt.Printf("source: %s\n", creds.Source)
	if !creds.SavedAt.IsZero() {
		fmt.Printf("saved: %s\n", creds.SavedAt.Format(time.RFC3339))
	}
	fmt.Println("env override: " + auth.EnvToken)
	return 0
}

// -------------- rendering helpers --------------

func cardLines(s order.State, price ui.PriceFormatter) []string {
	t := ui.Current()
	item := s.Item
	lines := []string{
		t.Title.Render(item.Name) + "  " + t.Price.Render(price.Format(item.Price)),
	}
	if item.Description != "" {
		lines = append(lines, t.Muted.Render(item.Description))
	}
	lines = append(lines, "", t.Accent.Render("Add-ons"))
	if len(item.AddOns) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	}
	for _, a := range item.AddOns {
		lines = append(lines, fmt.Sprintf("  %-20s %s", a.Name, t.Muted.Render(price.Format(a.UnitPrice))))
	}
	return lines
}
