package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/shopspring/decimal"
)

// TransformRegistry builds transforms from string parameters, as given on
// the command line
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory creates a transform from parameters
type TransformFactory func(params map[string]string) (FormTransform, error)

// NewTransformRegistry registers the built-in transforms. fatorR is the
// default threshold for optimize_pro_labore.
func NewTransformRegistry(fatorR decimal.Decimal) *TransformRegistry {
	registry := &TransformRegistry{factories: make(map[string]TransformFactory)}

	registry.Register("adjust_salary", func(params map[string]string) (FormTransform, error) {
		percent, err := requireDecimal(params, "percent")
		if err != nil {
			return nil, err
		}
		return &AdjustSalary{Percent: percent}, nil
	})
	registry.Register("adjust_revenue", func(params map[string]string) (FormTransform, error) {
		percent, err := requireDecimal(params, "percent")
		if err != nil {
			return nil, err
		}
		return &AdjustRevenue{Percent: percent}, nil
	})
	registry.Register("set_revenue", func(params map[string]string) (FormTransform, error) {
		amount, err := requireDecimal(params, "amount")
		if err != nil {
			return nil, err
		}
		return &SetRevenue{Amount: amount}, nil
	})
	registry.Register("optimize_pro_labore", func(params map[string]string) (FormTransform, error) {
		threshold := fatorR
		if _, ok := params["threshold"]; ok {
			var err error
			if threshold, err = requireDecimal(params, "threshold"); err != nil {
				return nil, err
			}
		}
		return &OptimizeProLabore{Threshold: threshold}, nil
	})
	registry.Register("set_export", func(params map[string]string) (FormTransform, error) {
		enabled, err := optionalBool(params, "enabled", true)
		if err != nil {
			return nil, err
		}
		return &SetExport{Enabled: enabled}, nil
	})
	registry.Register("set_annex", func(params map[string]string) (FormTransform, error) {
		annex, err := domain.ParseAnnexSelection(params["annex"])
		if err != nil {
			return nil, err
		}
		return &SetAnnex{Annex: annex}, nil
	})
	registry.Register("add_dependents", func(params map[string]string) (FormTransform, error) {
		count, err := strconv.Atoi(params["count"])
		if err != nil {
			return nil, fmt.Errorf("invalid count %q", params["count"])
		}
		return &AddDependents{Count: count}, nil
	})
	registry.Register("set_fgts", func(params map[string]string) (FormTransform, error) {
		include, err := optionalBool(params, "include", true)
		if err != nil {
			return nil, err
		}
		return &SetFGTS{Include: include}, nil
	})

	return registry
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (FormTransform, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// Parse creates a transform from "name" or "name:key=value,key=value"
func (r *TransformRegistry) Parse(spec string) (FormTransform, error) {
	name, params, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	return r.Create(name, params)
}

// List returns the registered transform names in order
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseSpec splits "name:key=value,key=value" into its name and parameters
func ParseSpec(spec string) (string, map[string]string, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(spec), ":")
	if name == "" {
		return "", nil, fmt.Errorf("transform name is empty in %q", spec)
	}

	params := make(map[string]string)
	if rest == "" {
		return name, params, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return "", nil, fmt.Errorf("invalid parameter %q in %q", pair, spec)
		}
		params[key] = strings.TrimSpace(value)
	}
	return name, params, nil
}

func requireDecimal(params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("missing parameter %q", key)
	}
	d, ok := form.ParseDecimal(raw)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func optionalBool(params map[string]string, key string, fallback bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return b, nil
}
