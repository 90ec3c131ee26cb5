// Package tui provides the interactive Bubble Tea front end for payplan.
package tui

import (
	"context"
	"time"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	tabPlan = iota
	tabHistory
	tabTiers
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5 // minimum content area height

	journalTimeout = 5 * time.Second
)

// JournalDoneMsg is sent when a background journal write finishes.
type JournalDoneMsg struct {
	Err error
}

// Options wires an App to its collaborators.
type Options struct {
	Log     *history.Log
	Planner *planner.Planner
	// Journal is nil when journaling is off. Writes run off the UI goroutine.
	Journal   planner.Appender
	Config    config.Config
	NeedSetup bool
	Logger    zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	log     *history.Log
	planner *planner.Planner
	journal planner.Appender
	cfg     config.Config
	logger  zerolog.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	plan     planState
	hist     historyState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Journal writes in flight
	spinner        spinner.Model
	journalPending int
	journaled      int
	journalErr     error
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		log:       opts.Log,
		planner:   opts.Planner,
		journal:   opts.Journal,
		cfg:       opts.Config,
		logger:    opts.Logger,
		needSetup: opts.NeedSetup,
		spinner:   sp,
		hist:      newHistoryState(),
	}
	a.plan = newPlanState(a.cfg)
	if a.needSetup {
		a.setupVals = newSetupValues(a.cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	} else if a.plan.editing {
		cmds = append(cmds, a.plan.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.plan.form != nil {
			a.plan.form = a.plan.form.WithWidth(a.planFormWidth())
		}
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg), nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case JournalDoneMsg:
		a.journalPending = max(a.journalPending-1, 0)
		a.journalErr = msg.Err
		if msg.Err != nil {
			a.logger.Warn().Err(msg.Err).Msg("journal append failed")
		} else {
			a.journaled++
		}
		return a, nil

	case spinner.TickMsg:
		if a.journalPending == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Open forms still need focus and blink messages.
	switch {
	case a.inSetup():
		return a.updateSetupForm(msg)
	case a.plan.editing:
		return a.updatePlanForm(msg)
	}
	return a, nil
}

func (a App) inSetup() bool {
	return a.needSetup && a.setupForm != nil
}

func (a App) handleMouse(msg tea.MouseMsg) App {
	if a.showHelp || a.inSetup() {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabHistory && a.hist.offset > 0 {
			a.hist.offset--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabHistory {
			a.hist.offset++
		}
	case tea.MouseButtonLeft:
		// The tab bar is row 0.
		if msg.Y == 0 && msg.Action == tea.MouseActionPress {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a
}

// handleKey routes a key press. Open inputs (setup, plan form, settings
// edit, history search) take every key except ctrl+c.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch {
	case a.inSetup():
		return a.updateSetupForm(msg)
	case a.activeTab == tabPlan && a.plan.editing:
		if key == "esc" {
			a.plan.editing = false
			return a, nil
		}
		return a.updatePlanForm(msg)
	case a.activeTab == tabSettings && a.settings.editing:
		return a.updateSettingsInput(msg)
	case a.activeTab == tabHistory && a.hist.searching:
		return a.updateHistorySearch(msg)
	}

	switch {
	case key == "?":
		a.showHelp = !a.showHelp
		return a, nil
	case a.showHelp:
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabPlan:
		if key == "enter" || key == "n" {
			return a.startPlanForm()
		}
	case tabHistory:
		if handled, cmd := a.historyKey(key); handled {
			return a, cmd
		}
	case tabSettings:
		if handled, m, cmd := a.settingsKey(key); handled {
			return m, cmd
		}
	}

	n := len(components.Tabs)
	switch key {
	case "q":
		return a, tea.Quit
	case "left":
		a.activeTab = (a.activeTab + n - 1) % n
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % n
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	switch {
	case a.width == 0:
		return ""
	case a.width < minTerminalWidth:
		return a.viewTooNarrow()
	case a.inSetup():
		return a.viewSetup()
	case a.showHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

// journalCmd appends a submission to the journal off the UI goroutine.
func journalCmd(j planner.Appender, res planner.Result) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		return JournalDoneMsg{Err: j.Append(ctx, res.Record, res.Breakdown)}
	}
}
