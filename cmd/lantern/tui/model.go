// Package tui provides the interactive reflection wizard interface.
// The interface is split across files:
//   - model.go: Types, construction, Init
//   - update.go: The update loop and per-step key handling
//   - view.go: Rendering functions
//   - commands.go: Async work (artwork, recommendation, export)
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"lantern/cmd/lantern/ui"
	"lantern/internal/config"
	"lantern/internal/export"
	"lantern/internal/i18n"
	"lantern/internal/journal"
	"lantern/internal/spirit"
	"lantern/internal/store"
	"lantern/internal/wizard"
)

// FocusMode says which control of the writing screen receives keys.
type FocusMode int

const (
	FocusText FocusMode = iota
	FocusRating
)

// Model is the main model for the reflection wizard.
type Model struct {
	ctrl        *wizard.Controller
	db          *store.Store
	bundle      *i18n.Bundle
	recommender *spirit.Recommender
	exporter    *export.Exporter
	cfg         *config.Config
	styles      ui.Styles
	log         *zap.Logger

	width  int
	height int

	// Topic screen
	cursor         int
	customInput    textinput.Model
	enteringCustom bool

	// Writing screen. rating is the committed value; ratingCursor is the
	// transient preview the selector highlights before committing.
	textarea     textarea.Model
	focus        FocusMode
	rating       int
	ratingCursor int

	// Export screen
	templateIdx  int
	nameInput    textinput.Model
	editingName  bool
	spinner      spinner.Model
	busy         bool
	confirmReset bool

	rec    *spirit.Recommendation
	assets *export.Assets

	intro   string
	status  string
	errText string
}

// New wires the wizard over previously saved state. Saved reflections, the
// cached recommendation, and the language preference are all restored.
func New(cfg *config.Config, db *store.Store, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bundle := i18n.New(db.Language())

	ctrl := wizard.New(db, cfg.Journal.Quota, cfg.Journal.OfferedTopics,
		bundle.Topics(), db.LoadReflections(), log)

	exporter, err := export.NewExporter(cfg.Export.OutputDir, log)
	if err != nil {
		return Model{}, err
	}

	ta := textarea.New()
	ta.Placeholder = bundle.T("writer.placeholder")
	ta.CharLimit = journal.MaxTextChars
	ta.SetHeight(5)
	ta.ShowLineNumbers = false

	custom := textinput.New()
	custom.Placeholder = bundle.T("topics.customPlaceholder")
	custom.CharLimit = journal.MaxTopicChars

	name := textinput.New()
	name.Placeholder = bundle.T("export.yourName")
	name.CharLimit = 40

	styles := ui.DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctrl:        ctrl,
		db:          db,
		bundle:      bundle,
		recommender: spirit.NewRecommender(cfg.Spirit, log),
		exporter:    exporter,
		cfg:         cfg,
		styles:      styles,
		log:         log,
		customInput: custom,
		textarea:    ta,
		nameInput:   name,
		spinner:     sp,
		rec:         db.LoadRecommendation(),
	}
	if ctrl.Resumed() {
		m.status = bundle.T("intro.resume")
	}
	m.renderIntro()
	return m, nil
}

// renderIntro rebuilds the glamour intro for the active language.
func (m *Model) renderIntro() {
	out, err := glamour.Render(m.bundle.T("intro.markdown"), "dark")
	if err != nil {
		m.log.Warn("failed to render intro markdown", zap.Error(err))
		out = m.bundle.T("app.subtitle")
	}
	m.intro = out
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.loadAssetsCmd(),
	)
}

// toggleLanguage flips the UI language and persists the preference. The
// topic catalog follows the language; answered reflections keep their text.
func (m *Model) toggleLanguage() {
	lang := m.bundle.Toggle()
	if err := m.db.SetLanguage(string(lang)); err != nil {
		m.log.Warn("failed to save language preference", zap.Error(err))
	}
	m.ctrl.SetCatalog(m.bundle.Topics())
	m.textarea.Placeholder = m.bundle.T("writer.placeholder")
	m.customInput.Placeholder = m.bundle.T("topics.customPlaceholder")
	m.nameInput.Placeholder = m.bundle.T("export.yourName")
	m.renderIntro()
	m.cursor = 0
}
