package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lantern/internal/journal"
	"lantern/internal/wizard"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.bundle.T("app.title")))
	b.WriteString("\n")

	switch m.ctrl.Step() {
	case wizard.StepIntro:
		b.WriteString(m.viewIntro())
	case wizard.StepTopics:
		b.WriteString(m.viewTopics())
	case wizard.StepWriting:
		b.WriteString(m.viewWriting())
	case wizard.StepExport:
		b.WriteString(m.viewExport())
	}

	if m.errText != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.errText))
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.Success.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewIntro() string {
	var b strings.Builder
	b.WriteString(m.intro)
	b.WriteString("\n" + m.styles.Hint.Render(m.bundle.T("intro.begin")))
	b.WriteString(m.hints("ctrl+t lang", "q quit"))
	return b.String()
}

func (m Model) viewTopics() string {
	var b strings.Builder
	b.WriteString(m.styles.Body.Render(m.bundle.T("topics.title")) + "\n")
	b.WriteString(m.styles.Subtitle.Render(m.bundle.T("topics.subtitle")) + "\n")
	b.WriteString(m.progressLine() + "\n\n")

	if m.enteringCustom {
		b.WriteString(m.styles.Accent.Render(m.bundle.T("topics.custom")) + "\n")
		b.WriteString(m.customInput.View() + "\n")
		b.WriteString(m.styles.Hint.Render(m.bundle.T("topics.customCancel")))
		return b.String()
	}

	rows := m.topicRows()
	inReflections := false
	for i, row := range rows {
		if row.kind == rowReflection && !inReflections {
			inReflections = true
			b.WriteString("\n" + m.styles.Muted.Render(m.bundle.T("topics.yours")) + "\n")
		}

		label := ""
		switch row.kind {
		case rowTopic:
			label = row.topic
		case rowCustom:
			label = "+ " + m.bundle.T("topics.custom")
		case rowReflection:
			label = fmt.Sprintf("%s — %s", row.ref.Topic, ellipsize(row.ref.Text, 40))
			if row.ref.Rating > 0 {
				label += fmt.Sprintf(" (%d/%d)", row.ref.Rating, journal.MaxRating)
			}
		case rowFinish:
			b.WriteString("\n")
			label = m.bundle.T("topics.finish")
		}

		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(m.styles.Option.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if m.ctrl.Complete() {
		b.WriteString("\n" + m.styles.Accent.Render(m.bundle.T("topics.full")) + "\n")
	}

	b.WriteString(m.hints("enter select", "d "+m.bundle.T("topics.delete"), "f "+m.bundle.T("topics.finish"), "esc back"))
	return b.String()
}

func (m Model) viewWriting() string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(m.bundle.T("writer.reflectingOn")) + " ")
	b.WriteString(m.styles.Accent.Render(m.ctrl.CurrentTopic()) + "\n")
	b.WriteString(m.progressLine() + "\n\n")

	b.WriteString(m.textarea.View() + "\n")
	b.WriteString(m.charCounter() + "\n\n")
	b.WriteString(m.ratingRow() + "\n")

	if m.focus == FocusRating {
		b.WriteString(m.styles.Hint.Render(m.bundle.T("writer.ratingHint")) + "\n")
		b.WriteString(m.hints("enter "+m.bundle.T("writer.submit"), "tab text", "esc "+m.bundle.T("writer.back")))
	} else {
		b.WriteString(m.hints("enter next", "tab rating", "esc "+m.bundle.T("writer.back")))
	}
	return b.String()
}

func (m Model) charCounter() string {
	n := len([]rune(m.textarea.Value()))
	left := journal.MaxTextChars - n

	var mood string
	switch {
	case n == 0:
		mood = m.bundle.T("writer.startWriting")
	case left == 0:
		return m.styles.Error.Render(m.bundle.T("writer.maxReached"))
	case n < 60:
		mood = m.bundle.T("writer.keepGoing")
	default:
		mood = m.bundle.T("writer.lookingGood")
	}
	return m.styles.Muted.Render(mood + " · " + m.bundle.Tf("writer.charsLeft", left))
}

func (m Model) ratingRow() string {
	var dots strings.Builder
	for i := 1; i <= journal.MaxRating; i++ {
		switch {
		case m.focus == FocusRating && i == m.ratingCursor && i > m.rating:
			// Preview position, not yet committed.
			dots.WriteString(m.styles.Accent.Render("◌"))
		case i <= m.rating:
			dots.WriteString(m.styles.Accent.Render("●"))
		default:
			dots.WriteString(m.styles.Muted.Render("○"))
		}
		dots.WriteString(" ")
	}

	label := m.styles.Muted.Render("– " + m.bundle.T("writer.outOfTen"))
	if m.rating > 0 {
		label = m.styles.Body.Render(fmt.Sprintf("%d %s", m.rating, m.bundle.T("writer.outOfTen")))
	}
	row := dots.String() + " " + label
	if m.focus == FocusRating {
		return m.styles.Card.Render(row)
	}
	return row
}

func (m Model) viewExport() string {
	var b strings.Builder
	b.WriteString(m.styles.Body.Render(m.bundle.T("export.title")) + "\n")
	b.WriteString(m.styles.Subtitle.Render(m.bundle.T("export.subtitle")) + "\n\n")

	// Template chooser.
	b.WriteString(m.styles.Muted.Render(m.bundle.T("export.chooseStyle")) + "  ")
	names := []string{m.bundle.T("export.minimal"), m.bundle.T("export.elegant"), m.bundle.T("export.bold")}
	var opts []string
	for i, name := range names {
		if i == m.templateIdx {
			opts = append(opts, m.styles.Selected.Render(name))
		} else {
			opts = append(opts, m.styles.Option.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, opts...) + "\n\n")

	// Name line.
	b.WriteString(m.styles.Muted.Render(m.bundle.T("export.yourName")) + " ")
	if m.editingName {
		b.WriteString(m.nameInput.View())
	} else if m.nameInput.Value() != "" {
		b.WriteString(m.styles.Body.Render(m.nameInput.Value()))
	} else {
		b.WriteString(m.styles.Hint.Render("n"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render(m.progressLine()) + "\n")
	b.WriteString(m.viewSpirit())

	if m.confirmReset {
		b.WriteString("\n" + m.styles.Error.Render(m.bundle.T("app.confirmStartOver")))
		return b.String()
	}

	b.WriteString(m.hints(
		"s "+m.bundle.T("export.share"),
		"d "+m.bundle.T("export.download"),
		"r "+m.bundle.T("export.spiritReveal"),
		"a "+m.bundle.T("export.addMore"),
		"x "+m.bundle.T("export.startOver"),
	))
	b.WriteString("\n" + m.styles.Hint.Render(m.bundle.T("export.tip")))
	return b.String()
}

func (m Model) viewSpirit() string {
	if m.busy {
		return "\n" + m.spinner.View() + " " + m.styles.Muted.Render(m.bundle.T("export.spiritAnalyzing")) + "\n"
	}
	if m.rec == nil {
		return "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + m.styles.Muted.Render(m.bundle.T("export.spiritYours")) + "\n")

	emoji := ""
	if animal, ok := m.cfg.FindAnimal(m.rec.Animal); ok {
		emoji = animal.Emoji + " "
	}
	card := m.styles.Accent.Render(emoji+m.rec.Title) + "\n" + m.spiritCard().Text
	b.WriteString(m.styles.Card.Render(card) + "\n")
	return b.String()
}

func (m Model) progressLine() string {
	n := len(m.ctrl.Reflections())
	step := n + 1
	if m.ctrl.Step() == wizard.StepExport {
		step = n
	}
	if step > m.ctrl.Quota() {
		step = m.ctrl.Quota()
	}
	return m.styles.Muted.Render(m.bundle.Tf("progress.step", step, m.ctrl.Quota()))
}

func (m Model) hints(parts ...string) string {
	return "\n\n" + m.styles.Footer.Render(strings.Join(parts, " · "))
}

func ellipsize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
