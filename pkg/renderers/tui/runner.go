// Package tui drives a wizard from an interactive terminal. Pages are shown
// one at a time; each enabled element is prompted according to its
// component kind and the user then picks a navigation action.
package tui

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/internal/log"
	"github.com/goliatone/go-formwizard/pkg/component"
	"github.com/goliatone/go-formwizard/pkg/modelview"
	"github.com/goliatone/go-formwizard/pkg/navigation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Navigation actions offered after each page.
const (
	ActionNext   = "Next"
	ActionBack   = "Back"
	ActionDone   = "Done"
	ActionCancel = "Cancel"
)

// Runner prompts a wizard page by page.
type Runner struct {
	driver PromptDriver
	theme  Theme
	logger zerolog.Logger
	out    io.Writer
	policy *bluemonday.Policy
}

// New constructs a runner backed by survey unless a driver is supplied.
func New(options ...Option) *Runner {
	r := &Runner{
		theme:  DefaultTheme(),
		logger: zerolog.Nop(),
		policy: bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Run opens w, walks its pages until the user finishes or cancels and
// disposes w before returning. The returned map holds the model values.
func (r *Runner) Run(ctx context.Context, w *wizard.Wizard) (values map[string]any, err error) {
	if w == nil {
		return nil, ErrNoWizard
	}
	if err := w.Open(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if derr := w.Dispose(); derr != nil && err == nil {
			err = derr
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.showPage(ctx, w); err != nil {
			return nil, err
		}

		action, err := r.chooseAction(ctx, w)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().
			Str(log.FieldEvent, "tui.action").
			Int(log.FieldPage, w.CurrentIndex()).
			Str(log.FieldAction, action).
			Msg("tui: action selected")

		switch action {
		case ActionCancel:
			return nil, ErrAborted
		case ActionDone:
			if values, ok := w.Done(); ok {
				return values, nil
			}
		case ActionBack:
			if _, err := w.Back(); err != nil {
				return nil, err
			}
		default:
			if _, err := w.Next(); err != nil {
				return nil, err
			}
		}
		if err := r.printMessage(ctx, w.Message()); err != nil {
			return nil, err
		}
	}
}

func (r *Runner) showPage(ctx context.Context, w *wizard.Wizard) error {
	p := w.Current()
	header := fmt.Sprintf("[%d/%d] %s", p.Index()+1, w.PageCount(), r.clean(p.Title()))
	if err := r.driver.Info(ctx, r.theme.Title.Render(header)); err != nil {
		return err
	}
	if desc := r.clean(p.Description()); desc != "" {
		if err := r.driver.Info(ctx, r.theme.Subtle.Render(desc)); err != nil {
			return err
		}
	}

	for _, el := range p.Elements() {
		if !el.Component.Enabled() {
			continue
		}
		if err := r.prompt(ctx, el); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) prompt(ctx context.Context, el modelview.Element) error {
	label := r.clean(el.Label)
	if label == "" {
		label = el.Name
	}
	message := r.theme.PromptPrefix + label
	help := r.clean(el.Description)

	switch c := el.Component.(type) {
	case *component.Checkbox:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: c.Checked(), Help: help})
		if err != nil {
			return err
		}
		return c.SetValue(answer)

	case *component.Dropdown:
		options := c.Options()
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: indexOf(options, c.Selected()),
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("tui: %s: selection %d out of range", label, idx)
		}
		return c.SetValue(options[idx])
	}

	txt, ok := component.AsText(el.Component)
	if !ok {
		return fmt.Errorf("tui: %s: unsupported component %s", label, el.Component.Kind())
	}

	var (
		answer string
		err    error
	)
	switch el.Component.Kind() {
	case component.KindReadOnlyText:
		return r.driver.Info(ctx, fmt.Sprintf("%s %s", r.theme.Subtle.Render(label+":"), r.clean(txt.Text())))
	case component.KindPassword:
		answer, err = r.driver.Password(ctx, InputConfig{Message: message, Default: txt.Text(), Help: help})
	case component.KindTextArea:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: txt.Text(), Help: help})
	default:
		answer, err = r.driver.Input(ctx, InputConfig{Message: message, Default: txt.Text(), Help: help})
	}
	if err != nil {
		return err
	}
	txt.SetText(answer)
	return nil
}

func (r *Runner) chooseAction(ctx context.Context, w *wizard.Wizard) (string, error) {
	actions := Actions(w.CurrentIndex(), w.PageCount())
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: r.theme.PromptPrefix + "Continue",
		Options: actions,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: action %d out of range", idx)
	}
	return actions[idx], nil
}

// Actions lists the navigation actions available on page index of count.
func Actions(index, count int) []string {
	actions := make([]string, 0, 3)
	if index < count-1 {
		actions = append(actions, ActionNext)
	} else {
		actions = append(actions, ActionDone)
	}
	if index > 0 {
		actions = append(actions, ActionBack)
	}
	return append(actions, ActionCancel)
}

func (r *Runner) printMessage(ctx context.Context, msg navigation.Message) error {
	if msg.IsZero() {
		return nil
	}
	prefix, style := r.theme.InfoPrefix, r.theme.Subtle
	switch msg.Level {
	case navigation.LevelError:
		prefix, style = r.theme.ErrorPrefix, r.theme.Error
	case navigation.LevelWarning:
		prefix, style = r.theme.WarnPrefix, r.theme.Warning
	}

	if err := r.driver.Info(ctx, style.Render(prefix+r.clean(msg.Text))); err != nil {
		return err
	}
	for _, line := range msg.Details() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := r.driver.Info(ctx, "  - "+r.clean(line)); err != nil {
			return err
		}
	}
	return nil
}

// clean strips markup from descriptor supplied text.
func (r *Runner) clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(s)))
}
