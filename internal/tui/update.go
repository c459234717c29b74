package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/heis/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		if err := m.applyConfig(msg.Config); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, m.calculateCmd()

	case CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		if m.assessment != nil {
			prev := m.assessment.Total
			m.previous = &prev
		}
		m.assessment = msg.Assessment
		m.points = msg.Points
		m.scenarios = msg.Scenarios
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input. Every change that affects the
// inputs triggers a fresh engine run.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	if m.config == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Intervention):
		if len(m.interventions) == 0 {
			return m, nil
		}
		m.interventionIdx = (m.interventionIdx + 1) % len(m.interventions)
		m.assessment = nil
		if err := m.rebuildSliders(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.calculateCmd()

	case key.Matches(msg, m.keys.Segment):
		if len(m.segments) == 0 {
			return m, nil
		}
		m.segmentIdx = (m.segmentIdx + 1) % len(m.segments)
		m.assessment = nil
		m.previous = nil
		return m, m.calculateCmd()

	case key.Matches(msg, m.keys.NextSlider):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSlider):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Increase), key.Matches(msg, m.keys.Decrease):
		if len(m.sliders) == 0 {
			return m, nil
		}
		s := m.sliders[m.focus]
		before := s.Value
		if key.Matches(msg, m.keys.Increase) {
			s.Increment()
		} else {
			s.Decrement()
		}
		if s.Value.Equal(before) {
			return m, nil
		}
		return m, m.calculateCmd()

	case key.Matches(msg, m.keys.Cumulation):
		if m.cumulation == domain.CumulationRunningSum {
			m.cumulation = domain.CumulationScaled
		} else {
			m.cumulation = domain.CumulationRunningSum
		}
		return m, m.calculateCmd()
	}

	return m, nil
}
