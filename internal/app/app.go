package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/router"
	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/screens/home"
	modulescreen "github.com/abhisek/secaware/internal/screens/module"
	"github.com/abhisek/secaware/internal/screens/placeholder"
	"github.com/abhisek/secaware/internal/screens/summary"
	"github.com/abhisek/secaware/internal/screens/welcome"
	"github.com/abhisek/secaware/internal/ui/layout"
)

// ErrNoSession is returned when the app is started without a progress store.
var ErrNoSession = errors.New("no progress store for this session")

// Options holds the dependencies for the application.
type Options struct {
	Catalog     *course.Catalog
	Store       *progress.Store
	Logger      *slog.Logger
	SessionID   string
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model. Its Update is the single inbox for
// course events: screens emit them and only AppModel applies them.
type AppModel struct {
	router  *router.Router
	catalog *course.Catalog
	store   *progress.Store
	logger  *slog.Logger
	session string
	width   int
	height  int
}

// newAppModel creates a new AppModel starting on the welcome or home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		catalog: opts.Catalog,
		store:   opts.Store,
		logger:  opts.Logger,
		session: opts.SessionID,
	}
	if m.catalog == nil {
		m.catalog = course.Default()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	homeFactory := func() screen.Screen {
		return home.New(m.catalog, m.store, m.summaryFactory)
	}
	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}
	m.router = router.New(initial)
	return m
}

func (m AppModel) summaryFactory() screen.Screen {
	return summary.New(m.catalog, m.store, m.session)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case progress.PointsAwarded:
		m.logger.Info("points awarded", "module", msg.ModuleID, "key", msg.Key, "points", msg.Points)
		m.store.Apply(msg)
		return m, nil

	case progress.ModuleCompleted:
		m.store.Apply(msg)
		return m, nil

	case progress.NavigationRequested:
		return m, m.navigate(msg.ModuleID)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// navigate moves the store to id and shows that module. A rejected move
// leaves the screen stack untouched.
func (m AppModel) navigate(id int) tea.Cmd {
	if !m.store.NavigateToModule(id) {
		return nil
	}
	mod, err := m.catalog.Module(id)
	if err != nil {
		m.logger.Error("navigation to unknown module", "target", id, "err", err)
		return nil
	}

	var next screen.Screen
	if mod.Available() {
		scr, err := modulescreen.New(mod, m.catalog.NextID(id), m.store, m.summaryFactory)
		if err != nil {
			m.logger.Error("open module", "module", id, "err", err)
			return nil
		}
		next = scr
	} else {
		next = placeholder.New(mod.Title, mod.Description)
	}
	m.logger.Info("module opened", "module", id)

	if m.router.Depth() > 1 {
		return m.router.Replace(next)
	}
	return m.router.Push(next)
}

func (m AppModel) headerStats() layout.HeaderStats {
	p := m.store.GetProgress()
	completed := 0
	for _, st := range p.ModuleStatus {
		if st.Completed {
			completed++
		}
	}
	return layout.HeaderStats{Score: p.TotalScore, Completed: completed, Total: m.catalog.Len()}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render draws the full frame, or nothing before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	size := layout.Size{Width: m.width, Height: m.height}
	if size.TooSmall() {
		return size.TooSmallMessage()
	}

	active := m.router.Active()
	frame := layout.Frame{Stats: m.headerStats()}
	if active != nil {
		frame.Title = active.Title()
	}

	if p, ok := active.(screen.KeyHintProvider); ok {
		frame.Hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		frame.Hints = []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	} else {
		frame.Hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navegar"},
			{Key: "Enter", Description: "Elegir"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}

	return frame.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Store == nil {
		return ErrNoSession
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
