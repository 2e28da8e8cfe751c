package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"songbook/internal/config"
	"songbook/internal/format"
	"songbook/internal/models"
	"songbook/internal/repositories"
	"songbook/internal/services"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, format.Error(fmt.Sprintf("Failed to load .env file: %v", err)))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := &appEnv{}
	app := newApp(env)

	if err := app.RunContext(ctx, os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, format.Info("Operation cancelled"))
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, format.Error(userMessage(err)))
		os.Exit(1)
	}
}

// appEnv holds the lazily-built application wiring. The database connection
// is only opened by commands that need it, so help and usage errors never
// require a reachable database.
type appEnv struct {
	cfg     *config.Config
	db      *models.Database
	service *services.SongsService
}

func newApp(env *appEnv) *cli.App {
	app := cli.NewApp()
	app.Name = "songbook"
	app.Usage = "Manage your personal song catalog."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Usage:    "username the command acts as",
			EnvVars:  []string{"SONGBOOK_USER"},
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		env.cfg = cfg
		setupLogging(cfg.LogLevel, c.Bool("verbose"))
		return nil
	}
	app.After = func(c *cli.Context) error {
		if env.db == nil {
			return nil
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := env.db.Close(closeCtx); err != nil {
			slog.Warn("Failed to close database connection", "error", err)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:  "add",
			Usage: "Add a new song",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Usage: "song title", Required: true},
				&cli.StringFlag{Name: "artist", Usage: "artist name", Required: true},
				&cli.StringFlag{Name: "genre", Usage: "song genre"},
				&cli.IntFlag{Name: "year", Usage: "release year"},
				&cli.IntFlag{Name: "duration", Usage: "duration in seconds"},
			},
			Action: env.handleAdd,
		},
		{
			Name:  "list",
			Usage: "List songs",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Usage: "limit number of results"},
				&cli.BoolFlag{Name: "all", Usage: "list all users' songs"},
				&cli.BoolFlag{Name: "table", Usage: "display as table, most recent first"},
			},
			Action: env.handleList,
		},
		{
			Name:      "search",
			Usage:     "Search songs by title or artist",
			ArgsUsage: "<term>",
			Action:    env.handleSearch,
		},
		{
			Name:      "get",
			Usage:     "Get a specific song",
			ArgsUsage: "<song_id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "log-view", Usage: "record the lookup in history"},
			},
			Action: env.handleGet,
		},
		{
			Name:      "update",
			Usage:     "Update a song",
			ArgsUsage: "<song_id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Usage: "new title"},
				&cli.StringFlag{Name: "artist", Usage: "new artist"},
				&cli.StringFlag{Name: "genre", Usage: "new genre (empty clears it)"},
				&cli.IntFlag{Name: "year", Usage: "new year"},
				&cli.IntFlag{Name: "duration", Usage: "new duration in seconds"},
			},
			Action: env.handleUpdate,
		},
		{
			Name:      "delete",
			Usage:     "Delete a song",
			ArgsUsage: "<song_id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "confirm", Usage: "skip confirmation prompt"},
			},
			Action: env.handleDelete,
		},
		{
			Name:  "history",
			Usage: "Show user history",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Value: 10, Usage: "limit number of results"},
			},
			Action: env.handleHistory,
		},
		{
			Name:      "play",
			Usage:     "Play a song",
			ArgsUsage: "<song_id>",
			Action:    env.handlePlay,
		},
	}
	return app
}

// setup connects to the database and wires the service. Called at the top of
// every handler that touches the store.
func (e *appEnv) setup(c *cli.Context) error {
	if e.service != nil {
		return nil
	}

	db, err := models.NewDatabase(c.Context, e.cfg.DatabaseURL, e.cfg.DatabaseName)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	e.db = db

	if err := db.CreateIndexes(c.Context); err != nil {
		slog.Warn("Failed to create indexes", "error", err)
	}

	e.service = services.NewSongsService(
		repositories.NewMongoSongRepository(db),
		repositories.NewMongoHistoryRepository(db),
		services.Limits{
			MaxHistoryEntries: e.cfg.MaxHistoryEntries,
			DefaultListLimit:  e.cfg.DefaultListLimit,
		},
	)
	return nil
}

func (e *appEnv) handleAdd(c *cli.Context) error {
	if err := e.setup(c); err != nil {
		return err
	}

	input := models.SongInput{
		Title:    c.String("title"),
		Artist:   c.String("artist"),
		Genre:    optionalString(c, "genre"),
		Year:     optionalInt(c, "year"),
		Duration: optionalInt(c, "duration"),
	}
	song, err := e.service.Add(c.Context, c.String("user"), input)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.Success(fmt.Sprintf("Song '%s' by %s added successfully!", song.Title, song.Artist)))
	return nil
}

func (e *appEnv) handleList(c *cli.Context) error {
	if err := e.setup(c); err != nil {
		return err
	}

	opts := services.ListOptions{
		Username: c.String("user"),
		AllUsers: c.Bool("all"),
		Limit:    c.Int("limit"),
	}
	if c.Bool("table") {
		opts.Sort = repositories.SortByRecent
	}

	songs, err := e.service.List(c.Context, opts)
	if err != nil {
		return err
	}

	if c.Bool("table") && len(songs) > 0 {
		fmt.Fprintln(c.App.Writer, format.SongTable(songs))
		return nil
	}
	label := c.String("user")
	if opts.AllUsers {
		label = ""
	}
	fmt.Fprintln(c.App.Writer, format.SongList(songs, label))
	return nil
}

func (e *appEnv) handleSearch(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: search <term>")
	}
	if err := e.setup(c); err != nil {
		return err
	}

	term := c.Args().First()
	songs, err := e.service.Search(c.Context, c.String("user"), term, 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.SearchResults(songs, strings.TrimSpace(term)))
	return nil
}

func (e *appEnv) handleGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: get <song_id>")
	}
	if err := e.setup(c); err != nil {
		return err
	}

	var song *models.Song
	var err error
	if c.Bool("log-view") {
		song, err = e.service.View(c.Context, c.String("user"), c.Args().First())
	} else {
		song, err = e.service.Get(c.Context, c.Args().First())
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "\n🎵 Song details:")
	fmt.Fprintln(c.App.Writer, format.Song(song))
	return nil
}

func (e *appEnv) handleUpdate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: update <song_id>")
	}

	patch := models.SongPatch{
		Title:    optionalString(c, "title"),
		Artist:   optionalString(c, "artist"),
		Genre:    optionalString(c, "genre"),
		Year:     optionalInt(c, "year"),
		Duration: optionalInt(c, "duration"),
	}
	if patch.IsEmpty() {
		return fmt.Errorf("no update fields provided")
	}

	if err := e.setup(c); err != nil {
		return err
	}
	if _, err := e.service.Update(c.Context, c.String("user"), c.Args().First(), patch); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.Success("Song updated successfully!"))
	return nil
}

func (e *appEnv) handleDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: delete <song_id>")
	}
	if err := e.setup(c); err != nil {
		return err
	}

	id := c.Args().First()
	if !c.Bool("confirm") {
		song, err := e.service.Get(c.Context, id)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "Are you sure you want to delete '%s' by %s? (y/N): ", song.Title, song.Artist)
		answer, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(c.App.Writer, format.Info("Delete cancelled"))
			return nil
		}
	}

	if err := e.service.Delete(c.Context, c.String("user"), id); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.Success("Song deleted successfully!"))
	return nil
}

func (e *appEnv) handleHistory(c *cli.Context) error {
	if err := e.setup(c); err != nil {
		return err
	}

	entries, err := e.service.History(c.Context, c.String("user"), c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.HistoryList(entries, c.String("user")))
	return nil
}

func (e *appEnv) handlePlay(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: play <song_id>")
	}
	if err := e.setup(c); err != nil {
		return err
	}

	song, err := e.service.Play(c.Context, c.String("user"), c.Args().First())
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, format.Success(fmt.Sprintf("Playing '%s' by %s", song.Title, song.Artist)))
	return nil
}

// optionalString returns the flag value only when the user supplied it, so a
// set-but-empty flag stays distinguishable from an omitted one.
func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}

// userMessage translates an error into the line shown to the user.
func userMessage(err error) string {
	var validationErr *models.ValidationError
	var storeErr *repositories.StoreError
	switch {
	case errors.Is(err, services.ErrSongNotFound):
		return "Song not found"
	case errors.Is(err, services.ErrNoSearchTerm):
		return fmt.Sprintf("Invalid search: %v", services.ErrNoSearchTerm)
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid input: %v", validationErr)
	case errors.As(err, &storeErr):
		return fmt.Sprintf("Database error: %v", storeErr)
	default:
		return err.Error()
	}
}

func setupLogging(level string, verbose bool) {
	if verbose {
		level = "debug"
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
