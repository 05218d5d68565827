// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/plainlaw/internal/ingest"
	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned for blank or whitespace-only submissions.
	ErrEmptyInput = errors.New("input is empty")

	// ErrBusy is returned while a request is already in flight.
	ErrBusy = errors.New("a request is already in progress")

	// ErrNoFiles is returned by Upload for an empty selection.
	ErrNoFiles = errors.New("no files selected")
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is the controller state.
type Phase int

const (
	// PhaseIdle accepts new submissions.
	PhaseIdle Phase = iota
	// PhaseAwaiting has a request in flight.
	PhaseAwaiting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaiting:
		return "awaiting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Generator produces the reply for one input. *gemini.Client implements it.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// Session owns the transcript and its persistence. *session.State
// implements it.
type Session interface {
	Conversation() *model.Conversation
	SaveHistory() error
	ClearHistory() error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller orchestrates submissions and uploads. Safe for concurrent use.
type Controller struct {
	gen  Generator
	sess Session
	log  *log.Logger

	mu       sync.Mutex
	phase    Phase
	onAppend func(model.Message)
}

// New creates an idle controller.
func New(gen Generator, sess Session) *Controller {
	return &Controller{
		gen:  gen,
		sess: sess,
		log:  logger.NewStyledLogger("controller"),
	}
}

// OnAppend registers fn to be called after every message append. fn runs on
// the goroutine that appended and must not call back into the controller
// while holding its own locks.
func (c *Controller) OnAppend(fn func(model.Message)) {
	c.mu.Lock()
	c.onAppend = fn
	c.mu.Unlock()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	return c.Phase() == PhaseAwaiting
}

// Messages returns a snapshot of the transcript.
func (c *Controller) Messages() []model.Message {
	return c.sess.Conversation().Messages()
}

// Begin starts a typed submission: it appends the user's message and moves
// to PhaseAwaiting. Blank input returns ErrEmptyInput and a submission
// while Awaiting returns ErrBusy; neither has any side effect.
func (c *Controller) Begin(text string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, ErrEmptyInput
	}
	if err := c.enterAwaiting(); err != nil {
		return model.Message{}, err
	}

	msg := model.NewUserMessage(text)
	c.append(msg)
	c.save()
	return msg, nil
}

// Finish completes a submission started by Begin. It never fails: a
// generation error becomes an apology message. The controller is Idle and
// the transcript saved when Finish returns.
func (c *Controller) Finish(ctx context.Context, text string) model.Message {
	defer c.enterIdle()

	msg := model.NewBotMessage(c.generate(ctx, strings.TrimSpace(text)))
	c.append(msg)
	c.save()
	return msg
}

// Submit runs Begin and Finish back to back and returns the bot message.
func (c *Controller) Submit(ctx context.Context, text string) (model.Message, error) {
	if _, err := c.Begin(text); err != nil {
		return model.Message{}, err
	}
	return c.Finish(ctx, text), nil
}

// Clear empties the transcript and deletes the persisted history.
func (c *Controller) Clear() error {
	if err := c.sess.ClearHistory(); err != nil {
		c.log.Warn("failed to clear persisted history", "err", err)
		return err
	}
	c.log.Debug("history cleared")
	return nil
}

// =============================================================================
// UPLOAD
// =============================================================================

// BeginUpload reserves the controller for an upload batch.
func (c *Controller) BeginUpload(sources []ingest.Source) error {
	if len(sources) == 0 {
		return ErrNoFiles
	}
	return c.enterAwaiting()
}

// RunUpload processes a batch reserved by BeginUpload. Files are handled
// strictly in order: read, append "Uploaded file: <name>", generate, append
// the reply. A read failure appends one apology and skips the rest of the
// batch; a generation failure only affects its own file. The transcript is
// saved once, at the end.
func (c *Controller) RunUpload(ctx context.Context, sources []ingest.Source) {
	defer c.enterIdle()
	defer c.save()

	for i, src := range sources {
		if ctx.Err() != nil {
			c.log.Debug("upload canceled", "remaining", len(sources)-i)
			return
		}

		content, err := ingest.Read(src)
		if err != nil {
			c.log.Warn("upload aborted", "file", src.Name(), "err", err)
			c.append(model.NewBotMessage(Apology(err)))
			return
		}

		c.append(model.NewUserMessage(UploadNotice(src.Name())))
		c.append(model.NewBotMessage(c.generate(ctx, content)))
	}
}

// Upload runs BeginUpload and RunUpload back to back.
func (c *Controller) Upload(ctx context.Context, sources []ingest.Source) error {
	if err := c.BeginUpload(sources); err != nil {
		return err
	}
	c.RunUpload(ctx, sources)
	return nil
}

// =============================================================================
// INTERNALS
// =============================================================================

// apologyPrefix starts every failure message.
const apologyPrefix = "Sorry, I encountered an error: "

// Apology is the bot message shown for any failure.
func Apology(err error) string {
	return fmt.Sprintf("%s%s. Please try again.", apologyPrefix, err.Error())
}

// IsApology reports whether msg is a failure message produced by Apology.
func IsApology(msg model.Message) bool {
	return !msg.IsUser && strings.HasPrefix(msg.Text, apologyPrefix)
}

// UploadNotice is the user message recorded for an uploaded file.
func UploadNotice(name string) string {
	return "Uploaded file: " + name
}

func (c *Controller) generate(ctx context.Context, input string) string {
	reply, err := c.gen.Generate(ctx, input)
	if err != nil {
		c.log.Warn("generation failed", "err", err)
		return Apology(err)
	}
	return reply
}

func (c *Controller) enterAwaiting() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseAwaiting {
		return ErrBusy
	}
	c.phase = PhaseAwaiting
	c.log.Debug("transition", "phase", c.phase)
	return nil
}

func (c *Controller) enterIdle() {
	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
	c.log.Debug("transition", "phase", PhaseIdle)
}

func (c *Controller) append(msg model.Message) {
	c.sess.Conversation().Append(msg)

	c.mu.Lock()
	fn := c.onAppend
	c.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (c *Controller) save() {
	if err := c.sess.SaveHistory(); err != nil {
		c.log.Warn("failed to save history", "err", err)
	}
}
