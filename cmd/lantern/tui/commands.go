package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lantern/internal/export"
	"lantern/internal/i18n"
	"lantern/internal/spirit"
)

type assetsLoadedMsg struct {
	assets *export.Assets
}

type recommendResultMsg struct {
	rec *spirit.Recommendation
	err error
}

type exportResultMsg struct {
	path   string
	opened bool
	share  bool
	err    error
}

// loadAssetsCmd decodes the per-animal artwork in the background so the
// first export does not stall on disk.
func (m Model) loadAssetsCmd() tea.Cmd {
	cfg := m.cfg
	log := m.log
	return func() tea.Msg {
		assets := export.LoadAssets(context.Background(), cfg.Export.ArtDir,
			cfg.Spirit.Animals, cfg.GetImageTimeout(), log)
		return assetsLoadedMsg{assets: assets}
	}
}

// recommendCmd asks the generative service which animal the year resembles.
// A cached result short-circuits the call entirely.
func (m Model) recommendCmd() tea.Cmd {
	if m.rec != nil {
		cached := m.rec
		return func() tea.Msg { return recommendResultMsg{rec: cached} }
	}

	recommender := m.recommender
	reflections := m.ctrl.Reflections()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		rec, err := recommender.Recommend(ctx, reflections)
		return recommendResultMsg{rec: rec, err: err}
	}
}

// exportCmd renders the story card and either shares or just saves it.
func (m Model) exportCmd(share bool) tea.Cmd {
	doc := m.buildDocument()
	exporter := m.exporter
	return func() tea.Msg {
		if share {
			path, opened, err := exporter.Share(doc)
			return exportResultMsg{path: path, opened: opened, share: true, err: err}
		}
		path, err := exporter.Download(doc)
		return exportResultMsg{path: path, err: err}
	}
}

// buildDocument assembles the localized story card for the current state.
func (m Model) buildDocument() export.Document {
	doc := export.Document{
		Template:    export.Templates()[m.templateIdx],
		Title:       m.bundle.T("app.title"),
		Subtitle:    m.bundle.T("app.subtitle"),
		Footer:      m.bundle.T("app.footer"),
		Reflections: m.ctrl.Reflections(),
	}
	if name := m.nameInput.Value(); name != "" {
		doc.Subtitle = name
	}
	if m.rec != nil {
		doc.Spirit = m.spiritCard()
	}
	return doc
}

func (m Model) spiritCard() *export.SpiritCard {
	card := &export.SpiritCard{
		Animal: m.rec.Animal,
		Title:  m.rec.Title,
		Traits: m.cfg.Spirit.Traits,
		Stats:  m.rec.Stats,
	}

	// The bold template carries the second, louder prose version.
	loud := export.Templates()[m.templateIdx] == export.TemplateBold
	thai := m.bundle.Lang() == i18n.LangTH
	switch {
	case thai && loud:
		card.Text = m.rec.Version2Th
	case thai:
		card.Text = m.rec.Version1Th
	case loud:
		card.Text = m.rec.Version2En
	default:
		card.Text = m.rec.Version1En
	}

	if m.assets != nil {
		if img, ok := m.assets.Image(m.rec.Animal); ok {
			card.Art = img
		}
	}
	return card
}
