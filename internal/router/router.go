// Package router keeps the stack of screens shown by the terminal app.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizup/internal/screen"
)

// Op is a navigation operation.
type Op int

const (
	OpPush Op = iota
	OpPop
	// OpReplace swaps the top screen, so Esc cannot lead back to it. A
	// submitted quiz is replaced by its summary this way.
	OpReplace
)

// NavMsg asks the router to change screens.
type NavMsg struct {
	Op     Op
	Screen screen.Screen
}

func Push(s screen.Screen) tea.Cmd    { return nav(OpPush, s) }
func Pop() tea.Cmd                    { return nav(OpPop, nil) }
func Replace(s screen.Screen) tea.Cmd { return nav(OpReplace, s) }

func nav(op Op, s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: op, Screen: s} }
}

// Router forwards messages to the top screen of a stack that never drops
// below its root.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies a NavMsg or hands msg to the active screen. Screens that
// become active are initialised.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(NavMsg); ok {
		return r.navigate(m)
	}
	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) navigate(m NavMsg) tea.Cmd {
	switch m.Op {
	case OpPop:
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
		return nil
	case OpReplace:
		if len(r.stack) > 0 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	}
	if m.Screen == nil {
		return nil
	}
	r.stack = append(r.stack, m.Screen)
	return m.Screen.Init()
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
