package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okanz/shiftwatch/internal/auth"
	"github.com/okanz/shiftwatch/internal/roster"
	"github.com/okanz/shiftwatch/internal/store"
	"github.com/okanz/shiftwatch/internal/tui"
	"github.com/okanz/shiftwatch/internal/watch"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	agg, err := watch.New(s, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting aggregator: %v\n", err)
		os.Exit(1)
	}
	defer agg.Close()

	session := auth.NewSession(func(passcode string) (bool, error) {
		want, err := s.GetSetting(store.SettingAdminPasscode)
		if err != nil {
			return false, err
		}
		return passcode == want, nil
	})

	r := roster.New(roster.Default())

	app := tui.NewApp(s, r, agg, session)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
