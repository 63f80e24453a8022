package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/songhaven/songbook/internal/app"
	"github.com/songhaven/songbook/internal/config"
	"github.com/songhaven/songbook/internal/domain"
)

// Runner holds the wired application and provides a method per CLI command.
type Runner struct {
	app    *app.Application
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	// App injects a pre-wired application, used by tests. When nil, each
	// command wires its own from the --config flag and shuts it down after.
	App    *app.Application
	Output io.Writer
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		app:    opts.App,
		output: opts.Output,
	}
}

// withApp runs fn against the injected application, or wires one for the
// duration of the command.
func (r *Runner) withApp(cmd *cli.Command, fn func(a *app.Application) error) error {
	if r.app != nil {
		return fn(r.app)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	return fn(a)
}

// signIn authenticates when --email and --password are set. Without
// credentials the command runs as the guest user.
func (r *Runner) signIn(ctx context.Context, cmd *cli.Command, a *app.Application) error {
	email := cmd.String("email")
	password := cmd.String("password")
	if email == "" {
		return nil
	}

	user, err := a.Identity().SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "signed in as %s\n", user.DisplayName)
	return nil
}

// findSong locates a catalog entry by its numeric id after a reload.
func findSong(ctx context.Context, a *app.Application, id int) (domain.Song, error) {
	if err := a.Sync().ListSongs(ctx); err != nil {
		return domain.Song{}, err
	}
	for _, song := range a.Store().Songs() {
		if song.ID == id {
			return song, nil
		}
	}
	return domain.Song{}, fmt.Errorf("no song with id %d", id)
}

func parseSongID(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("song id argument is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("song id %q is not a number", raw)
	}
	return id, nil
}

func (r *Runner) printSong(song domain.Song, marker string) {
	fmt.Fprintf(r.output, "%3d %s %-30s %-15s %s\n",
		song.ID, marker, song.Title, song.Category, song.RecordedDate)
}
