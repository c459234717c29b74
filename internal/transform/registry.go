package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (EffectTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale_effects", createScaleAllEffects)
	registry.Register("scale_effect", createScaleEffectValue)
	registry.Register("set_effect", createSetEffectValue)
	registry.Register("remove_pathway", createDropPathway)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (EffectTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_effect:name=iq_increase,value=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (EffectTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseAssignment parses a "name=value" effect override into a SetEffectValue.
func ParseAssignment(assignment string) (*SetEffectValue, error) {
	kv := strings.SplitN(assignment, "=", 2)
	if len(kv) != 2 {
		return nil, fmt.Errorf("invalid effect override, expected 'name=value', got: %s", assignment)
	}
	name := strings.TrimSpace(kv[0])
	if _, ok := LookupEffect(name); !ok {
		return nil, fmt.Errorf("unknown effect %q (available: %s)", name, strings.Join(EffectNames(), ", "))
	}
	value, err := decimal.NewFromString(strings.TrimSpace(kv[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return &SetEffectValue{Effect: name, Value: value}, nil
}

func createScaleAllEffects(params map[string]string) (EffectTransform, error) {
	factor, err := requireDecimal("scale_effects", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleAllEffects{Factor: factor}, nil
}

func createScaleEffectValue(params map[string]string) (EffectTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("scale_effect requires 'name' parameter")
	}
	factor, err := requireDecimal("scale_effect", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleEffectValue{Effect: name, Factor: factor}, nil
}

func createSetEffectValue(params map[string]string) (EffectTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("set_effect requires 'name' parameter")
	}
	value, err := requireDecimal("set_effect", params, "value")
	if err != nil {
		return nil, err
	}
	return &SetEffectValue{Effect: name, Value: value}, nil
}

func createDropPathway(params map[string]string) (EffectTransform, error) {
	pathway, ok := params["pathway"]
	if !ok {
		return nil, fmt.Errorf("remove_pathway requires 'pathway' parameter")
	}
	return &DropPathway{Pathway: domain.Pathway(pathway)}, nil
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
