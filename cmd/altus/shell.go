package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lox/altus/internal/debounce"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/session"
)

type ShellCmd struct{}

const shellHelp = `commandes:
  type <texte>    saisie partielle, suggestions après une pause
  pick <n>        ouvrir la suggestion n
  search <ville>  rechercher et ouvrir la meilleure correspondance
  day <0-6>       afficher un autre jour
  hours <4|8|12>  longueur de la fenêtre horaire
  fav             ajouter ou retirer la ville courante des favoris
  favs            lister les favoris
  open <n>        ouvrir le favori n
  theme           basculer le thème clair/sombre
  quit`

func (c *ShellCmd) Run(app *App) error {
	sh := newShell(app.Session(), app, os.Stdout)
	defer sh.suggester.Cancel()
	return sh.run(context.Background(), os.Stdin)
}

type shell struct {
	sess      *session.Session
	app       *App
	suggester *session.Suggester

	mu          sync.Mutex
	out         io.Writer
	suggestions []models.Location
}

func newShell(sess *session.Session, app *App, out io.Writer) *shell {
	sh := &shell{sess: sess, app: app, out: out}
	sh.suggester = session.NewSuggester(sess, debounce.DefaultDelay, sh.showSuggestions)
	return sh
}

func (sh *shell) showSuggestions(query string, locs []models.Location) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.suggestions = locs
	if query == "" {
		return
	}
	printSuggestions(sh.out, locs)
}

func (sh *shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) printView(v session.View) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	printView(sh.out, v)
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	sh.printf("%s\n", shellHelp)
	scanner := bufio.NewScanner(in)
	for {
		sh.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		sh.report(sh.exec(ctx, cmd, arg))
	}
}

// report prints the user-facing message for err, if there is one.
func (sh *shell) report(err error) {
	if msg := session.UserMessage(err); msg != "" {
		sh.printf("%s\n", msg)
	}
}

func (sh *shell) exec(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "":
		return nil
	case "help", "?":
		sh.printf("%s\n", shellHelp)
		return nil
	case "type":
		sh.suggester.Input(arg)
		return nil
	case "pick":
		loc, ok := sh.pick(arg)
		if !ok {
			sh.printf("suggestion attendue, tapez d'abord type <texte>\n")
			return nil
		}
		sh.suggester.Cancel()
		return sh.show(sh.sess.SelectCity(ctx, loc))
	case "search":
		sh.suggester.Cancel()
		return sh.show(sh.sess.Search(ctx, arg))
	case "day":
		day, err := strconv.Atoi(arg)
		if err != nil {
			sh.printf("jour attendu: 0 à 6\n")
			return nil
		}
		return sh.show(sh.sess.SelectDay(ctx, day))
	case "hours":
		hours, err := strconv.Atoi(arg)
		if err != nil || (hours != 4 && hours != 8 && hours != 12) {
			sh.printf("fenêtre attendue: 4, 8 ou 12\n")
			return nil
		}
		v, err := sh.sess.SetHourlyWindow(hours)
		if errors.Is(err, session.ErrNoCity) {
			sh.printf("fenêtre: %dh\n", hours)
			return nil
		}
		return sh.show(v, err)
	case "fav":
		on, err := sh.sess.ToggleFavorite()
		if err != nil {
			return err
		}
		if on {
			sh.printf("★ ajouté aux favoris\n")
		} else {
			sh.printf("☆ retiré des favoris\n")
		}
		return nil
	case "favs":
		favs, err := sh.sess.Favorites()
		if err != nil {
			return err
		}
		sh.mu.Lock()
		printFavorites(sh.out, favs)
		sh.mu.Unlock()
		return nil
	case "open":
		favs, err := sh.sess.Favorites()
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(favs) {
			sh.printf("favori attendu: 1 à %d\n", len(favs))
			return nil
		}
		return sh.show(sh.sess.SelectCity(ctx, favs[n-1].Location()))
	case "theme":
		t, err := sh.app.Store.ToggleTheme()
		if err != nil {
			return err
		}
		sh.printf("thème: %s\n", t)
		return nil
	default:
		sh.printf("commande inconnue %q, tapez help\n", cmd)
		return nil
	}
}

func (sh *shell) pick(arg string) (models.Location, bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(sh.suggestions) {
		return models.Location{}, false
	}
	return sh.suggestions[n-1], true
}

func (sh *shell) show(v session.View, err error) error {
	if err != nil {
		return err
	}
	sh.printView(v)
	return nil
}
