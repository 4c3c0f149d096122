package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri-ngl/learning-dbt/internal/tui/components"
)

// SpinnerTracker renders a spinner while a job wait blocks.
// In non-interactive mode it runs the wait without any rendering.
type SpinnerTracker struct {
	out         io.Writer
	interactive bool
}

// NewSpinnerTracker creates a tracker writing to stderr, interactive when DetectMode says so.
func NewSpinnerTracker() *SpinnerTracker {
	return &SpinnerTracker{out: os.Stderr, interactive: IsInteractive()}
}

// Track runs wait in the background and animates message until it returns.
// The returned error is always the one from wait.
func (t *SpinnerTracker) Track(ctx context.Context, message string, wait func(ctx context.Context) error) error {
	if !t.interactive {
		return wait(ctx)
	}

	p := tea.NewProgram(
		newTrackModel(message),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(t.out),
	)

	done := make(chan error, 1)
	go func() {
		err := wait(ctx)
		done <- err
		if err != nil {
			p.Send(components.SpinnerFailed(err))
			return
		}
		p.Send(components.SpinnerDone(message))
	}()

	// A render failure must not hide the job outcome.
	_, _ = p.Run()
	return <-done
}

type trackModel struct {
	spinner components.Spinner
}

func newTrackModel(message string) trackModel {
	return trackModel{spinner: components.NewSpinner(message, components.SpinnerStyles{
		Spinner: SpinnerStyle,
		Message: MessageStyle,
		Elapsed: MutedStyle,
		Success: SuccessStyle,
		Error:   ErrorStyle,
	})}
}

func (m trackModel) Init() tea.Cmd {
	return m.spinner.Init()
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.spinner.IsDone() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m trackModel) View() string {
	return m.spinner.View() + "\n"
}
