// Package wizard drives the reflection flow as an explicit state machine:
// intro, topic selection, writing, export. The TUI renders whatever step the
// controller is in and forwards user actions; all transition rules live here.
package wizard

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lantern/internal/journal"
)

// Step identifies one screen of the flow.
type Step int

const (
	StepIntro Step = iota
	StepTopics
	StepWriting
	StepExport
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepTopics:
		return "topics"
	case StepWriting:
		return "writing"
	case StepExport:
		return "export"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Store is the slice of persistence the controller needs. Failures are
// logged and swallowed; a broken disk must not lose the in-memory session.
type Store interface {
	SaveReflections([]journal.Reflection) error
	DeleteReflections() error
	DeleteRecommendation() error
}

// Controller owns the reflection list and the current position in the flow.
// It is not safe for concurrent use; the TUI calls it from its update loop.
type Controller struct {
	store   Store
	log     *zap.Logger
	quota   int
	offered int
	catalog []string

	step        Step
	reflections []journal.Reflection

	// Scratch state for the writing step.
	currentTopic string
	editingID    string
}

// New builds a controller over previously saved reflections. A fresh
// session starts at the intro; a resumed one skips straight to where it
// left off.
func New(store Store, quota, offered int, catalog []string, saved []journal.Reflection, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if quota < 1 {
		quota = 1
	}
	c := &Controller{
		store:       store,
		log:         log,
		quota:       quota,
		offered:     offered,
		catalog:     catalog,
		step:        StepIntro,
		reflections: saved,
	}
	if len(saved) > 0 {
		c.step = c.deriveStep()
	}
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Quota returns the number of reflections that completes the flow.
func (c *Controller) Quota() int { return c.quota }

// Complete reports whether the quota has been met.
func (c *Controller) Complete() bool { return len(c.reflections) >= c.quota }

// Resumed reports whether saved reflections were restored for this session.
func (c *Controller) Resumed() bool { return len(c.reflections) > 0 }

// Reflections returns the answered reflections in insertion order.
func (c *Controller) Reflections() []journal.Reflection {
	out := make([]journal.Reflection, len(c.reflections))
	copy(out, c.reflections)
	return out
}

// CurrentTopic returns the topic being written about, valid during the
// writing step.
func (c *Controller) CurrentTopic() string { return c.currentTopic }

// Editing returns the reflection currently being edited, if any.
func (c *Controller) Editing() (journal.Reflection, bool) {
	if c.editingID == "" {
		return journal.Reflection{}, false
	}
	i := journal.IndexOf(c.reflections, c.editingID)
	if i < 0 {
		return journal.Reflection{}, false
	}
	return c.reflections[i], true
}

// SetCatalog swaps the curated topic catalog, used when the UI language
// changes. Already-answered reflections keep their original topic text.
func (c *Controller) SetCatalog(catalog []string) { c.catalog = catalog }

// AvailableTopics returns the catalog topics not yet answered, capped at the
// configured offering size.
func (c *Controller) AvailableTopics() []string {
	return journal.AvailableTopics(c.catalog, c.reflections, c.offered)
}

// Begin leaves the intro. A completed saved session resumes directly at the
// export step; anything else resumes at topic selection.
func (c *Controller) Begin() {
	if c.step != StepIntro {
		return
	}
	c.step = c.deriveStep()
}

func (c *Controller) deriveStep() Step {
	if c.Complete() {
		return StepExport
	}
	return StepTopics
}

// SelectTopic moves to the writing step for the given topic. Empty topics,
// topics already answered, and selecting past the quota are rejected.
func (c *Controller) SelectTopic(topic string) error {
	if c.step != StepTopics {
		return fmt.Errorf("cannot select a topic during %s", c.step)
	}
	topic = journal.ClampTopic(strings.TrimSpace(topic))
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}
	if journal.UsedTopics(c.reflections)[topic] {
		return fmt.Errorf("topic %q already answered", topic)
	}
	if c.Complete() {
		return fmt.Errorf("all %d reflections already written", c.quota)
	}

	c.currentTopic = topic
	c.editingID = ""
	c.step = StepWriting
	return nil
}

// Edit reopens an existing reflection in the writing step, returning it so
// the UI can prefill text and rating.
func (c *Controller) Edit(id string) (journal.Reflection, error) {
	if c.step != StepTopics && c.step != StepExport {
		return journal.Reflection{}, fmt.Errorf("cannot edit during %s", c.step)
	}
	i := journal.IndexOf(c.reflections, id)
	if i < 0 {
		return journal.Reflection{}, fmt.Errorf("no reflection with id %q", id)
	}

	r := c.reflections[i]
	c.currentTopic = r.Topic
	c.editingID = r.ID
	c.step = StepWriting
	return r, nil
}

// CompleteReflection commits the writing step. Editing replaces the original
// in place, keeping its id and position; otherwise a new reflection is
// appended. Reaching the quota moves straight to the export step.
func (c *Controller) CompleteReflection(text string, rating int) error {
	if c.step != StepWriting {
		return fmt.Errorf("cannot submit during %s", c.step)
	}
	text = strings.TrimSpace(journal.ClampText(text))
	if !journal.ValidText(text) {
		return fmt.Errorf("reflection text must not be empty")
	}
	if !journal.ValidRating(rating) {
		return fmt.Errorf("rating must be between %d and %d", journal.MinRating, journal.MaxRating)
	}

	if c.editingID != "" {
		i := journal.IndexOf(c.reflections, c.editingID)
		if i < 0 {
			return fmt.Errorf("edited reflection %q no longer exists", c.editingID)
		}
		c.reflections[i].Text = text
		c.reflections[i].Rating = rating
	} else {
		c.reflections = append(c.reflections, journal.Reflection{
			ID:     uuid.NewString(),
			Topic:  c.currentTopic,
			Text:   text,
			Rating: rating,
		})
	}

	c.clearScratch()
	c.persist()
	c.invalidateRecommendation()
	c.step = c.deriveStep()
	return nil
}

// Delete removes a reflection. Deleting the last one from the export step
// drops back to topic selection.
func (c *Controller) Delete(id string) error {
	i := journal.IndexOf(c.reflections, id)
	if i < 0 {
		return fmt.Errorf("no reflection with id %q", id)
	}
	c.reflections = append(c.reflections[:i], c.reflections[i+1:]...)

	c.persist()
	c.invalidateRecommendation()
	if c.step == StepExport && len(c.reflections) == 0 {
		c.step = StepTopics
	}
	return nil
}

// Finish jumps to the export step early. At least one reflection is needed.
func (c *Controller) Finish() error {
	if c.step != StepTopics {
		return fmt.Errorf("cannot finish during %s", c.step)
	}
	if len(c.reflections) == 0 {
		return fmt.Errorf("write at least one reflection first")
	}
	c.step = StepExport
	return nil
}

// Back steps one screen towards the intro. Abandoning the writing step
// discards the draft; at the intro it is a no-op.
func (c *Controller) Back() {
	switch c.step {
	case StepWriting:
		c.clearScratch()
		c.step = StepTopics
	case StepExport:
		c.step = StepTopics
	case StepTopics:
		c.step = StepIntro
	}
}

// StartOver wipes every reflection, the cached recommendation, and any
// draft, returning to the intro. Safe to call repeatedly.
func (c *Controller) StartOver() {
	c.reflections = nil
	c.clearScratch()
	if err := c.store.DeleteReflections(); err != nil {
		c.log.Warn("failed to clear saved reflections", zap.Error(err))
	}
	if err := c.store.DeleteRecommendation(); err != nil {
		c.log.Warn("failed to clear cached recommendation", zap.Error(err))
	}
	c.step = StepIntro
}

func (c *Controller) clearScratch() {
	c.currentTopic = ""
	c.editingID = ""
}

func (c *Controller) persist() {
	if err := c.store.SaveReflections(c.reflections); err != nil {
		c.log.Warn("failed to persist reflections", zap.Error(err))
	}
}

// Any change to the reflection list makes a cached recommendation stale.
func (c *Controller) invalidateRecommendation() {
	if err := c.store.DeleteRecommendation(); err != nil {
		c.log.Warn("failed to invalidate cached recommendation", zap.Error(err))
	}
}
