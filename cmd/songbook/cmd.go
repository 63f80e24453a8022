// submodule cmd contains command definitions
package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/songhaven/songbook/internal/app"
	"github.com/songhaven/songbook/internal/domain"
)

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		signupCommand, loginCommand, listCommand, addCommand, editCommand, playCommand, bookmarkCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

func credentialFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Usage:    "Account email",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "Account password",
			Required: required,
		},
	}
}

func signupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Register a new account",
		Flags: append([]cli.Flag{configFlag()}, credentialFlags(true)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				user, err := a.Identity().SignUp(ctx, cmd.String("email"), cmd.String("password"))
				if err != nil {
					return err
				}
				fmt.Fprintf(r.output, "account created for %s\n", user.DisplayName)
				return nil
			})
		},
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Verify account credentials",
		Flags: append([]cli.Flag{configFlag()}, credentialFlags(true)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				return r.signIn(ctx, cmd, a)
			})
		},
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the song catalog",
		Flags:   []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				if err := a.Sync().ListSongs(ctx); err != nil {
					return err
				}

				saved := map[string]bool{}
				for _, s := range a.Store().SavedSongs() {
					saved[s.Key()] = true
				}

				for _, song := range a.Store().Songs() {
					marker := " "
					if saved[domain.SavedSongOf(song).Key()] {
						marker = "*"
					}
					r.printSong(song, marker)
				}
				return nil
			})
		},
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a song to the catalog",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "title", Usage: "Song title", Required: true},
			&cli.StringFlag{Name: "category", Usage: "Song category", Required: true},
			&cli.StringFlag{Name: "recorded", Usage: "Recorded date (MM-DD-YYYY or MM/DD/YYYY)", Required: true},
			&cli.StringFlag{Name: "image", Usage: "Cover image reference"},
			&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
			&cli.StringFlag{Name: "audio", Usage: "Audio file name"},
		}, credentialFlags(false)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				if err := r.signIn(ctx, cmd, a); err != nil {
					return err
				}
				if err := a.Sync().ListSongs(ctx); err != nil {
					return err
				}

				draft := domain.Song{
					ID:            a.Sync().NextLocalID(),
					Title:         cmd.String("title"),
					Category:      cmd.String("category"),
					RecordedDate:  cmd.String("recorded"),
					Image:         cmd.String("image"),
					Notes:         cmd.String("notes"),
					AudioFileName: cmd.String("audio"),
				}
				if err := a.Sync().CreateSong(ctx, draft, a.Store().User()); err != nil {
					return err
				}
				fmt.Fprintf(r.output, "added %q (%d songs in catalog)\n",
					draft.Title, len(a.Store().Songs()))
				return nil
			})
		},
	}
}

func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a catalog entry",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "title", Usage: "Song title"},
			&cli.StringFlag{Name: "category", Usage: "Song category"},
			&cli.StringFlag{Name: "recorded", Usage: "Recorded date (MM-DD-YYYY or MM/DD/YYYY)"},
			&cli.StringFlag{Name: "image", Usage: "Cover image reference"},
			&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
			&cli.StringFlag{Name: "audio", Usage: "Audio file name"},
		}, credentialFlags(false)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				if err := r.signIn(ctx, cmd, a); err != nil {
					return err
				}

				id, err := parseSongID(cmd)
				if err != nil {
					return err
				}
				existing, err := findSong(ctx, a, id)
				if err != nil {
					return err
				}

				edits := existing.Clone()
				if cmd.IsSet("title") {
					edits.Title = cmd.String("title")
				}
				if cmd.IsSet("category") {
					edits.Category = cmd.String("category")
				}
				if cmd.IsSet("recorded") {
					edits.RecordedDate = cmd.String("recorded")
				}
				if cmd.IsSet("image") {
					edits.Image = cmd.String("image")
				}
				if cmd.IsSet("notes") {
					edits.Notes = cmd.String("notes")
				}
				if cmd.IsSet("audio") {
					edits.AudioFileName = cmd.String("audio")
				}

				if err := a.Sync().UpdateSong(ctx, existing, edits, a.Store().User()); err != nil {
					return err
				}
				fmt.Fprintf(r.output, "updated %q\n", edits.Title)
				return nil
			})
		},
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Load a song and start playback",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.withApp(cmd, func(a *app.Application) error {
				id, err := parseSongID(cmd)
				if err != nil {
					return err
				}
				song, err := findSong(ctx, a, id)
				if err != nil {
					return err
				}

				if err := a.Playback().LoadSong(ctx, song); err != nil {
					return err
				}
				if err := a.Playback().TogglePlay(); err != nil {
					return err
				}
				fmt.Fprintf(r.output, "%s: %q\n", a.Playback().State(), song.Title)
				return nil
			})
		},
	}
}

func bookmarkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookmark",
		Aliases: []string{"bm"},
		Usage:   "Manage saved songs",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Save a song by id",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{configFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.withApp(cmd, func(a *app.Application) error {
						id, err := parseSongID(cmd)
						if err != nil {
							return err
						}
						song, err := findSong(ctx, a, id)
						if err != nil {
							return err
						}
						if err := a.Bookmarks().Save(ctx, song); err != nil {
							return err
						}
						fmt.Fprintf(r.output, "saved %q\n", song.Title)
						return nil
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a saved song by id",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{configFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.withApp(cmd, func(a *app.Application) error {
						id, err := parseSongID(cmd)
						if err != nil {
							return err
						}
						song, err := findSong(ctx, a, id)
						if err != nil {
							return err
						}
						if err := a.Bookmarks().Remove(ctx, song); err != nil {
							return err
						}
						fmt.Fprintf(r.output, "removed %q\n", song.Title)
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "List saved songs",
				Flags: []cli.Flag{configFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.withApp(cmd, func(a *app.Application) error {
						for _, s := range a.Store().SavedSongs() {
							fmt.Fprintf(r.output, "%3d %s\n", s.ID, s.Title)
						}
						return nil
					})
				},
			},
		},
	}
}
