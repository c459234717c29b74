package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/heis/internal/config"
	"github.com/shopspring/decimal"
)

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(nil)
	cfg := config.DefaultConfiguration()

	set, err := engine.Compare(context.Background(), cfg, CompareOptions{
		BaseIntervention: "klotho",
		BaseSegment:      "over_60",
		Interventions:    []string{"klotho", "follistatin"},
		Segments:         []string{"over_60", "adult"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if set.BaseName != "klotho@over_60" {
		t.Errorf("Expected base klotho@over_60, got %s", set.BaseName)
	}
	want := []string{"klotho@adult", "follistatin@over_60", "follistatin@adult"}
	if len(set.AlternativeResults) != len(want) {
		t.Fatalf("Expected %d alternatives, got %d", len(want), len(set.AlternativeResults))
	}
	for i, name := range want {
		alt := set.AlternativeResults[i]
		if alt.Name != name {
			t.Errorf("Alternative %d: expected %s, got %s", i, name, alt.Name)
		}
		diff := alt.Impact.GDPImpact.Sub(set.BaseResult.Impact.GDPImpact)
		if !alt.DiffFromBase.GDPImpact.Equal(diff) {
			t.Errorf("%s: GDP diff %s does not match %s", name, alt.DiffFromBase.GDPImpact, diff)
		}
	}
}

func TestCompareEngine_Compare_Templates(t *testing.T) {
	engine := NewCompareEngine(nil)

	set, err := engine.Compare(context.Background(), config.DefaultConfiguration(), CompareOptions{
		BaseIntervention: "klotho",
		BaseSegment:      "over_60",
		Templates:        []string{"half_effect"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(set.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(set.AlternativeResults))
	}
	alt := set.AlternativeResults[0]
	if alt.Name != "klotho+half_effect@over_60" {
		t.Errorf("Unexpected name %s", alt.Name)
	}
	if alt.Description == "" {
		t.Error("Expected template description")
	}
	if !alt.PctFromBase.GDPImpact.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("Expected half effect to halve GDP, got %s%%", alt.PctFromBase.GDPImpact)
	}
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)
	cfg := config.DefaultConfiguration()

	tests := []struct {
		name string
		opts CompareOptions
	}{
		{"missing base", CompareOptions{BaseIntervention: "klotho"}},
		{"unknown base", CompareOptions{BaseIntervention: "unknown", BaseSegment: "over_60"}},
		{"unknown alternative", CompareOptions{BaseIntervention: "klotho", BaseSegment: "over_60", Segments: []string{"nowhere"}}},
		{"unknown template", CompareOptions{BaseIntervention: "klotho", BaseSegment: "over_60", Templates: []string{"triple"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := engine.Compare(context.Background(), cfg, tt.opts); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := engine.Compare(context.Background(), nil, CompareOptions{}); err == nil {
		t.Error("Expected an error for nil configuration")
	}
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompareEngine(nil).Compare(ctx, config.DefaultConfiguration(), CompareOptions{
		BaseIntervention: "klotho",
		BaseSegment:      "over_60",
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
