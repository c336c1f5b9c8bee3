package hcl

import (
	"context"
	"fmt"

	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translatePack converts the HCL-specific pack schema into the agnostic model.
func (l *Loader) translatePack(ctx context.Context, s *schema.Pack, manifestPath string) (*config.Pack, error) {
	p := &config.Pack{
		Id:           s.Id,
		Name:         s.Name,
		Version:      s.Version,
		Description:  s.Description,
		Dependencies: s.Dependencies,
		TargetAgents: s.TargetAgents,
		Files:        s.Files,
		ManifestPath: manifestPath,
	}

	if s.Meta != nil {
		if err := l.translateMeta(ctx, s, p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// translateMeta evaluates the free-form attributes of the meta block.
// Attributes must be constant expressions; the meta block has no eval
// context, so references to variables are rejected at load time.
func (l *Loader) translateMeta(ctx context.Context, s *schema.Pack, p *config.Pack) error {
	attrs, diags := s.Meta.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("invalid meta block in pack '%s': %w", s.Id, diags)
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("invalid meta attribute '%s' in pack '%s': %w", name, s.Id, diags)
		}

		switch name {
		case "category":
			strVal, err := convert.Convert(val, cty.String)
			if err != nil {
				return fmt.Errorf("meta attribute 'category' in pack '%s' must be a string: %w", s.Id, err)
			}
			p.Category = strVal.AsString()
		case "tags":
			tags, err := ctyToStringSlice(val)
			if err != nil {
				return fmt.Errorf("meta attribute 'tags' in pack '%s': %w", s.Id, err)
			}
			p.Tags = tags
		default:
			return fmt.Errorf("unknown meta attribute '%s' in pack '%s'", name, s.Id)
		}
	}

	return nil
}

// ctyToStringSlice converts a cty list or tuple value into a []string.
func ctyToStringSlice(val cty.Value) ([]string, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		return nil, fmt.Errorf("must be a list of strings, got %s", val.Type().FriendlyName())
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		strVal, err := convert.Convert(elem, cty.String)
		if err != nil {
			return nil, fmt.Errorf("element is not a string: %w", err)
		}
		out = append(out, strVal.AsString())
	}
	return out, nil
}
