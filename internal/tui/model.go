package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/heis/internal/calculation"
	"github.com/rgehrsitz/heis/internal/config"
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/rgehrsitz/heis/internal/tui/components"
)

// Model represents the entire dashboard state
type Model struct {
	width  int
	height int

	configPath string
	config     *domain.Configuration
	engine     *calculation.CalculationEngine

	keys     KeyMap
	help     help.Model
	showHelp bool

	interventions   []string
	segments        []string
	interventionIdx int
	segmentIdx      int

	effects   []*components.ParameterSlider
	modifiers []*components.ParameterSlider
	settings  []*components.ParameterSlider
	sliders   []*components.ParameterSlider // focus ring: effects, modifiers, settings
	focus     int

	cumulation domain.CumulationMode

	seq        int
	assessment *domain.ImpactAssessment
	previous   *domain.AggregatedImpact
	points     []domain.TimeSeriesPoint
	scenarios  []domain.ScenarioResult

	err error
}

// NewModel creates a dashboard for the configuration at configPath. An empty
// path uses the built-in defaults.
func NewModel(configPath string) Model {
	return Model{
		configPath: configPath,
		engine:     calculation.NewCalculationEngine(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		cumulation: domain.CumulationScaled,
		width:      100,
		height:     40,
	}
}

// Init loads the configuration
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ConfigLoadedMsg{Config: config.DefaultConfiguration()}
		}
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func (m Model) currentIntervention() string {
	if len(m.interventions) == 0 {
		return ""
	}
	return m.interventions[m.interventionIdx]
}

func (m Model) currentSegment() string {
	if len(m.segments) == 0 {
		return ""
	}
	return m.segments[m.segmentIdx]
}

// applyConfig installs a configuration and selects its first intervention
// and segment.
func (m *Model) applyConfig(cfg *domain.Configuration) error {
	m.config = cfg
	m.engine = calculation.NewCalculationEngineWithConfig(cfg)
	m.interventions = cfg.InterventionKeys()
	m.segments = cfg.SegmentKeys()
	m.interventionIdx = 0
	m.segmentIdx = 0
	if cfg.Projection.Cumulation != "" {
		m.cumulation = cfg.Projection.Cumulation
	}
	m.settings = newSettingSliders(cfg.Projection)
	return m.rebuildSliders()
}

// rebuildSliders creates one slider per effect the current intervention
// models plus its impact modifiers. Scenario settings carry over.
func (m *Model) rebuildSliders() error {
	m.effects = nil
	m.sliders = nil
	m.focus = 0
	m.previous = nil

	intervention, err := m.config.Intervention(m.currentIntervention())
	if err != nil {
		return err
	}
	params := intervention.Parameters
	for _, name := range transform.EffectNames() {
		effect, _ := transform.LookupEffect(name)
		if !effect.Present(params) {
			continue
		}
		value, err := transform.EffectValue(params, name)
		if err != nil {
			return err
		}
		slider, err := components.NewEffectSlider(effect, value)
		if err != nil {
			return err
		}
		m.effects = append(m.effects, slider)
	}
	m.modifiers = newModifierSliders(params.Modifiers)

	m.sliders = make([]*components.ParameterSlider, 0, len(m.effects)+len(m.modifiers)+len(m.settings))
	m.sliders = append(m.sliders, m.effects...)
	m.sliders = append(m.sliders, m.modifiers...)
	m.sliders = append(m.sliders, m.settings...)
	m.setFocus(0)
	return nil
}

func (m *Model) setFocus(i int) {
	if len(m.sliders) == 0 {
		m.focus = 0
		return
	}
	m.focus = (i + len(m.sliders)) % len(m.sliders)
	for j, s := range m.sliders {
		s.IsFocused = j == m.focus
	}
}

// calculateCmd snapshots the current selections, runs the engine and the
// three sensitivity scenarios.
func (m *Model) calculateCmd() tea.Cmd {
	if m.config == nil {
		return nil
	}
	m.seq++
	seq := m.seq
	engine := m.engine
	cfg := m.config
	interventionKey := m.currentIntervention()
	segmentKey := m.currentSegment()
	values := make(map[string]decimal.Decimal, len(m.sliders))
	for _, s := range m.sliders {
		values[s.Effect] = s.Value
	}
	multiplier := values[settingEffectMultiplier]
	opts := calculation.ProjectionOptions{
		Years:      int(values[settingProjectionYears].IntPart()),
		GrowthRate: values[settingGrowthRate],
		Cumulation: m.cumulation,
	}

	return func() tea.Msg {
		msg := CalculationCompleteMsg{Seq: seq}
		in, err := cfg.Inputs(interventionKey, segmentKey)
		if err != nil {
			msg.Err = err
			return msg
		}
		params := in.Intervention.Parameters
		for _, name := range transform.EffectNames() {
			v, ok := values[name]
			if !ok {
				continue
			}
			if params, err = transform.SetEffect(params, name, v); err != nil {
				msg.Err = err
				return msg
			}
		}
		if params.Modifiers, err = applyModifiers(params.Modifiers, values); err != nil {
			msg.Err = err
			return msg
		}
		adjusted := in.WithParameters(params)

		msg.Assessment, msg.Points, msg.Err = engine.Project(adjusted, opts)
		if msg.Err != nil {
			return msg
		}
		msg.Scenarios, msg.Err = engine.RunScenarios(adjusted, multiplier, opts.GrowthRate)
		return msg
	}
}
