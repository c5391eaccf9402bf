package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"lantern/internal/journal"
	"lantern/internal/spirit"
	"lantern/internal/wizard"
)

// rowKind tags one selectable row of the topic screen.
type rowKind int

const (
	rowTopic rowKind = iota
	rowCustom
	rowReflection
	rowFinish
)

type topicRow struct {
	kind  rowKind
	topic string
	ref   journal.Reflection
}

// topicRows flattens the topic screen into one selectable list: offered
// topics, the custom entry, answered reflections, and the finish action.
func (m Model) topicRows() []topicRow {
	var rows []topicRow
	if !m.ctrl.Complete() {
		for _, topic := range m.ctrl.AvailableTopics() {
			rows = append(rows, topicRow{kind: rowTopic, topic: topic})
		}
		rows = append(rows, topicRow{kind: rowCustom})
	}
	for _, ref := range m.ctrl.Reflections() {
		rows = append(rows, topicRow{kind: rowReflection, ref: ref})
	}
	if len(m.ctrl.Reflections()) > 0 {
		rows = append(rows, topicRow{kind: rowFinish})
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 8
		if w > 64 {
			w = 64
		}
		if w > 0 {
			m.textarea.SetWidth(w)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case assetsLoadedMsg:
		m.assets = msg.assets
		return m, nil

	case recommendResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = m.bundle.Tf("export.spiritError", spiritErrText(msg.err))
			return m, nil
		}
		m.rec = msg.rec
		if err := m.db.SaveRecommendation(msg.rec); err != nil {
			m.log.Warn("failed to cache recommendation", zap.Error(err))
		}
		return m, nil

	case exportResultMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Warn("export failed", zap.Error(msg.err))
			m.errText = m.bundle.T("export.failedGenerate")
			return m, nil
		}
		if msg.share && msg.opened {
			m.status = m.bundle.Tf("export.shared", msg.path)
		} else {
			m.status = m.bundle.Tf("export.saved", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t":
		m.toggleLanguage()
		return m, nil
	}

	// One async action at a time; a second submit must not race the first.
	if m.busy {
		return m, nil
	}
	m.status = ""
	m.errText = ""

	switch m.ctrl.Step() {
	case wizard.StepIntro:
		return m.updateIntro(msg)
	case wizard.StepTopics:
		return m.updateTopics(msg)
	case wizard.StepWriting:
		return m.updateWriting(msg)
	case wizard.StepExport:
		return m.updateExport(msg)
	}
	return m, nil
}

func (m Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		m.ctrl.Begin()
		m.cursor = 0
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateTopics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.enteringCustom {
		switch msg.String() {
		case "esc":
			m.enteringCustom = false
			m.customInput.Reset()
			return m, nil
		case "enter":
			topic := m.customInput.Value()
			m.enteringCustom = false
			m.customInput.Reset()
			return m.selectTopic(topic)
		}
		var cmd tea.Cmd
		m.customInput, cmd = m.customInput.Update(msg)
		return m, cmd
	}

	rows := m.topicRows()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= len(rows) {
			return m, nil
		}
		switch row := rows[m.cursor]; row.kind {
		case rowTopic:
			return m.selectTopic(row.topic)
		case rowCustom:
			m.enteringCustom = true
			m.customInput.Focus()
			return m, nil
		case rowReflection:
			return m.editReflection(row.ref.ID)
		case rowFinish:
			if err := m.ctrl.Finish(); err != nil {
				m.errText = err.Error()
			}
		}
	case "d":
		if m.cursor < len(rows) && rows[m.cursor].kind == rowReflection {
			if err := m.ctrl.Delete(rows[m.cursor].ref.ID); err != nil {
				m.errText = err.Error()
			} else {
				m.rec = nil
				m.cursor = 0
			}
		}
	case "f":
		if err := m.ctrl.Finish(); err != nil {
			m.errText = err.Error()
		}
	case "esc":
		m.ctrl.Back()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectTopic(topic string) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectTopic(topic); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.textarea.Reset()
	m.rating = 0
	m.ratingCursor = 0
	m.focus = FocusText
	m.textarea.Focus()
	return m, nil
}

func (m Model) editReflection(id string) (tea.Model, tea.Cmd) {
	ref, err := m.ctrl.Edit(id)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.textarea.SetValue(ref.Text)
	m.textarea.CursorEnd()
	m.rating = ref.Rating
	m.ratingCursor = ref.Rating
	m.focus = FocusText
	m.textarea.Focus()
	return m, nil
}

func (m Model) updateWriting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.textarea.Blur()
		m.ctrl.Back()
		m.cursor = 0
		return m, nil
	case "tab":
		if m.focus == FocusText {
			m.enterRatingFocus()
		} else {
			m.focus = FocusText
			m.textarea.Focus()
		}
		return m, nil
	}

	if m.focus == FocusRating {
		switch key := msg.String(); key {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.rating = int(key[0] - '0')
			m.ratingCursor = m.rating
		case "0":
			m.rating = journal.MaxRating
			m.ratingCursor = m.rating
		case "left", "h":
			if m.ratingCursor > journal.MinRating {
				m.ratingCursor--
			}
		case "right", "l":
			if m.ratingCursor < journal.MaxRating {
				m.ratingCursor++
			}
		case " ":
			m.rating = m.ratingCursor
		case "backspace":
			m.rating = 0
		case "enter":
			// Enter commits the previewed value first; a second enter
			// submits.
			if m.rating != m.ratingCursor {
				m.rating = m.ratingCursor
				return m, nil
			}
			return m.submitReflection()
		}
		return m, nil
	}

	if msg.String() == "enter" {
		// Enter moves on to the rating; the text is short by design of the
		// character cap, so newlines are not worth a key.
		if !journal.ValidText(m.textarea.Value()) {
			m.errText = m.bundle.T("writer.startWriting")
			return m, nil
		}
		m.enterRatingFocus()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) enterRatingFocus() {
	m.focus = FocusRating
	m.textarea.Blur()
	if m.ratingCursor == 0 {
		m.ratingCursor = m.rating
	}
	if m.ratingCursor == 0 {
		m.ratingCursor = 5
	}
}

func (m Model) submitReflection() (tea.Model, tea.Cmd) {
	if err := m.ctrl.CompleteReflection(m.textarea.Value(), m.rating); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.rec = nil
	m.textarea.Reset()
	m.textarea.Blur()
	m.rating = 0
	m.ratingCursor = 0
	m.cursor = 0
	return m, nil
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingName {
		switch msg.String() {
		case "enter", "esc":
			m.editingName = false
			m.nameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	if m.confirmReset {
		switch msg.String() {
		case "y":
			m.confirmReset = false
			m.ctrl.StartOver()
			m.rec = nil
			m.cursor = 0
		case "n", "esc":
			m.confirmReset = false
		}
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.templateIdx = (m.templateIdx + 2) % 3
	case "right", "l", "tab":
		m.templateIdx = (m.templateIdx + 1) % 3
	case "s":
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.exportCmd(true))
	case "d":
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.exportCmd(false))
	case "r":
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.recommendCmd())
	case "n":
		m.editingName = true
		m.nameInput.Focus()
	case "a", "esc":
		m.ctrl.Back()
		m.cursor = 0
	case "x":
		m.confirmReset = true
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// spiritErrText maps the recommender's sentinel errors to short messages.
func spiritErrText(err error) string {
	switch {
	case errors.Is(err, spirit.ErrConfiguration):
		return "missing API key (set GEMINI_API_KEY)"
	case errors.Is(err, spirit.ErrInvalidInput):
		return "nothing to analyze yet"
	case errors.Is(err, spirit.ErrInvalidCategory):
		return "the oracle named an unknown animal"
	case errors.Is(err, spirit.ErrResponseFormat):
		return "the oracle's answer made no sense"
	default:
		return err.Error()
	}
}
