package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okanz/shiftwatch/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	passcode        *string
	passcodeConfirm *string
}

func newSettingsModel(s *store.Store) settingsModel {
	pc, confirm := "", ""
	return settingsModel{
		store:           s,
		passcode:        &pc,
		passcodeConfirm: &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.passcode = ""
	*s.passcodeConfirm = ""

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New admin passcode").
				EchoMode(huh.EchoModePassword).
				Value(s.passcode).
				Validate(func(v string) error {
					if len(v) < 4 {
						return fmt.Errorf("at least 4 characters")
					}
					return nil
				}),
			huh.NewInput().Title("Confirm passcode").
				EchoMode(huh.EchoModePassword).
				Value(s.passcodeConfirm),
		).Title("Admin Access"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if *s.passcode != *s.passcodeConfirm {
			return s, func() tea.Msg {
				return statusMsg{text: "Passcodes do not match", isError: true}
			}
		}
		if err := s.store.SetSetting(store.SettingAdminPasscode, *s.passcode); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: "Operation failed. Please try again", isError: true}
			}
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return statusMsg{text: "Passcode updated"}
		})
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to change the admin passcode")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(maskSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func maskSettingValue(k, v string) string {
	if k == store.SettingAdminPasscode {
		return strings.Repeat("•", len(v))
	}
	return v
}
