package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is a loading indicator that also shows elapsed time.
type Spinner struct {
	spinner spinner.Model
	message string
	started time.Time
	elapsed time.Duration
	done    bool
	success bool
	result  string
	err     error
	styles  SpinnerStyles
}

// SpinnerStyles groups the styles a Spinner renders with.
type SpinnerStyles struct {
	Spinner lipgloss.Style
	Message lipgloss.Style
	Elapsed lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewSpinner creates a new spinner with the given message and styles.
func NewSpinner(message string, styles SpinnerStyles) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return Spinner{
		spinner: s,
		message: message,
		started: time.Now(),
		styles:  styles,
	}
}

// Init implements tea.Model.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles tick and completion messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerDoneMsg:
		s.done = true
		s.success = msg.Success
		s.result = msg.Result
		s.err = msg.Err
		s.elapsed = time.Since(s.started)
		return s, nil
	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		s.elapsed = time.Since(s.started)
		return s, cmd
	}
	return s, nil
}

// View implements tea.Model.
func (s Spinner) View() string {
	elapsed := s.styles.Elapsed.Render(fmt.Sprintf("(%s)", s.elapsed.Truncate(time.Second)))
	if s.done {
		if s.success {
			return s.styles.Success.Render("✓ "+s.result) + " " + elapsed
		}
		msg := "failed"
		if s.err != nil {
			msg = s.err.Error()
		}
		return s.styles.Error.Render("✗ "+msg) + " " + elapsed
	}
	return s.spinner.View() + " " + s.styles.Message.Render(s.message) + " " + elapsed
}

// SpinnerDoneMsg signals that the spinner operation is complete.
type SpinnerDoneMsg struct {
	Success bool
	Result  string
	Err     error
}

// SpinnerDone creates a success message.
func SpinnerDone(result string) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: true, Result: result}
}

// SpinnerFailed creates a failure message.
func SpinnerFailed(err error) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: false, Err: err}
}

// IsDone returns true if the spinner is done.
func (s Spinner) IsDone() bool {
	return s.done
}
