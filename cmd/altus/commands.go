package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/altus/internal/api"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/session"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:":8080" env:"ALTUS_ADDR"`
}

func (c *ServeCmd) Run(app *App) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := api.NewServer(app.Geocoder, app.Forecast, app.Store, app.Alerts, c.Addr)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

type SearchCmd struct {
	City  string `arg:"" help:"City name."`
	Day   int    `help:"Day offset, 0 is today." default:"0"`
	Hours int    `help:"Hourly window length." default:"4" enum:"4,8,12"`
}

func (c *SearchCmd) Run(app *App) error {
	ctx := context.Background()
	sess := app.Session()

	loc, err := sess.Locate(ctx, c.City)
	if err != nil {
		return userError(err)
	}
	view, err := sess.Show(ctx, loc, c.Day, c.Hours)
	if err != nil {
		return userError(err)
	}
	printView(os.Stdout, view)
	return nil
}

type SuggestCmd struct {
	Query string `arg:"" help:"Partial city name."`
}

func (c *SuggestCmd) Run(app *App) error {
	locs := app.Session().Suggest(context.Background(), c.Query)
	printSuggestions(os.Stdout, locs)
	return nil
}

type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List favorite cities."`
	Add    FavoritesAddCmd    `cmd:"" help:"Add the best match for a city name."`
	Remove FavoritesRemoveCmd `cmd:"" help:"Remove a favorite by its full name."`
}

type FavoritesListCmd struct{}

func (c *FavoritesListCmd) Run(app *App) error {
	favs, err := app.Store.Favorites()
	if err != nil {
		return err
	}
	printFavorites(os.Stdout, favs)
	return nil
}

type FavoritesAddCmd struct {
	City string `arg:"" help:"City name."`
}

func (c *FavoritesAddCmd) Run(app *App) error {
	loc, err := app.Session().Locate(context.Background(), c.City)
	if err != nil {
		return userError(err)
	}
	f := models.FavoriteFrom(loc)
	added, err := app.Store.AddFavorite(f)
	if err != nil {
		return err
	}
	if !added {
		fmt.Printf("%s est déjà dans les favoris\n", f.Name)
		return nil
	}
	fmt.Printf("★ %s\n", f.Name)
	return nil
}

type FavoritesRemoveCmd struct {
	Name string `arg:"" help:"Full favorite name as listed."`
}

func (c *FavoritesRemoveCmd) Run(app *App) error {
	removed, err := app.Store.RemoveFavorite(c.Name)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("favori %q introuvable", c.Name)
	}
	fmt.Printf("☆ %s\n", c.Name)
	return nil
}

type ThemeCmd struct {
	Get    ThemeGetCmd    `cmd:"" default:"1" help:"Print the current theme."`
	Set    ThemeSetCmd    `cmd:"" help:"Set the theme."`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between light and dark."`
}

type ThemeGetCmd struct{}

func (c *ThemeGetCmd) Run(app *App) error {
	t, err := app.Store.Theme()
	if err != nil {
		return err
	}
	fmt.Println(t)
	return nil
}

type ThemeSetCmd struct {
	Theme string `arg:"" enum:"light,dark" help:"light or dark."`
}

func (c *ThemeSetCmd) Run(app *App) error {
	return app.Store.SetTheme(models.Theme(c.Theme))
}

type ThemeToggleCmd struct{}

func (c *ThemeToggleCmd) Run(app *App) error {
	t, err := app.Store.ToggleTheme()
	if err != nil {
		return err
	}
	fmt.Println(t)
	return nil
}

// userError replaces err with the French text a user should see, keeping
// the cause for errors.Is.
func userError(err error) error {
	var noMatch *session.NoMatchError
	if errors.As(err, &noMatch) {
		return err
	}
	return fmt.Errorf("%s (%w)", session.UserMessage(err), err)
}
