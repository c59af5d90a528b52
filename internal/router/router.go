// Package router keeps the stack of screens the app is showing. The exam
// flow only ever goes forward: setup pushes assembly, assembly is replaced
// by the exam, the exam by its results, and results unwind to setup.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/reddycharan348/Gate-Exam/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct{ Screen screen.Screen }

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen so Esc never lands
// on a finished stage.
type ReplaceScreenMsg struct{ Screen screen.Screen }

// PopToRootMsg closes everything above the first screen.
type PopToRootMsg struct{}

// Router is a stack of screens. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
	return nil
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// PopToRoot unwinds to the first screen and re-runs its Init so it can
// reload anything that changed while it was covered.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}
	clear(r.stack[1:])
	r.stack = r.stack[:1]
	return r.stack[0].Init()
}

// Active is the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// navigate applies a navigation message. ok is false for any other message.
func (r *Router) navigate(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen), true
	case PopScreenMsg:
		return r.Pop(), true
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen), true
	case PopToRootMsg:
		return r.PopToRoot(), true
	}
	return nil, false
}

// Update handles navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if cmd, ok := r.navigate(msg); ok {
		return cmd
	}
	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into the given body size.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}

// Push, Pop, Replace and PopToRoot are the commands screens return to
// navigate.

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Pop() tea.Msg { return PopScreenMsg{} }

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

func PopToRoot() tea.Msg { return PopToRootMsg{} }
