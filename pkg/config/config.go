// Package config loads the optional ctox.hcl file that tunes the translator.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"ctox/pkg/ctxlog"
	"ctox/pkg/lower"
)

// Config is the resolved configuration with defaults applied.
type Config struct {
	Mode       lower.Mode
	Indent     int
	Python     lower.PythonOptions
	Java       lower.JavaOptions
	OutputDir  string
	OutputName string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mode:       lower.Lenient,
		Indent:     4,
		Java:       lower.JavaOptions{ClassName: "Program"},
		OutputDir:  "output",
		OutputName: "translated",
	}
}

// Backend returns the named backend configured from c.
func (c *Config) Backend(name string) (lower.Backend, error) {
	switch strings.ToLower(name) {
	case "python", "py":
		return lower.NewPython(c.Python), nil
	case "java":
		return lower.NewJava(c.Java), nil
	default:
		return nil, fmt.Errorf("unknown target language %q (want python or java)", name)
	}
}

// Options returns the lowering options described by c.
func (c *Config) Options() lower.Options {
	return lower.Options{Mode: c.Mode, Indent: strings.Repeat(" ", c.Indent)}
}

type fileSchema struct {
	Mode   hcl.Expression `hcl:"mode,optional"`
	Indent hcl.Expression `hcl:"indent,optional"`
	Python *pythonBlock   `hcl:"python,block"`
	Java   *javaBlock     `hcl:"java,block"`
	Output *outputBlock   `hcl:"output,block"`
}

type pythonBlock struct {
	TypeHints *bool          `hcl:"type_hints,optional"`
	Types     hcl.Expression `hcl:"types,optional"`
}

type javaBlock struct {
	ClassName *string        `hcl:"class_name,optional"`
	Types     hcl.Expression `hcl:"types,optional"`
}

type outputBlock struct {
	Dir  *string `hcl:"dir,optional"`
	Name *string `hcl:"name,optional"`
}

// Load reads and decodes the HCL file at path.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding config file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %s", path, diags.Error())
	}
	cfg, err := decode(file, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Successfully decoded config file.", "path", path, "mode", cfg.Mode, "indent", cfg.Indent)
	return cfg, nil
}

// Parse decodes HCL source held in memory. filename is used in messages.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %s", filename, diags.Error())
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*Config, error) {
	var raw fileSchema
	diags := gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %s", filename, diags.Error())
	}

	cfg := Default()
	diags = diags.Extend(cfg.apply(&raw))
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid config file %s: %s", filename, diags.Error())
	}
	return cfg, nil
}

func (c *Config) apply(raw *fileSchema) hcl.Diagnostics {
	var diags hcl.Diagnostics

	var mode string
	if ok, d := decodeOptional(raw.Mode, &mode); ok && !d.HasErrors() {
		m, err := lower.ParseMode(mode)
		if err != nil {
			d = d.Append(invalid(raw.Mode, "Invalid mode", err.Error()))
		}
		c.Mode = m
		diags = diags.Extend(d)
	} else {
		diags = diags.Extend(d)
	}

	var indent int
	if ok, d := decodeOptional(raw.Indent, &indent); ok && !d.HasErrors() {
		if indent < 1 || indent > 8 {
			d = d.Append(invalid(raw.Indent, "Invalid indent", fmt.Sprintf("indent must be between 1 and 8, got %d", indent)))
		}
		c.Indent = indent
		diags = diags.Extend(d)
	} else {
		diags = diags.Extend(d)
	}

	if raw.Python != nil {
		if raw.Python.TypeHints != nil {
			c.Python.TypeHints = *raw.Python.TypeHints
		}
		types, d := decodeTypes(raw.Python.Types)
		c.Python.Types = types
		diags = diags.Extend(d)
	}

	if raw.Java != nil {
		if raw.Java.ClassName != nil {
			c.Java.ClassName = *raw.Java.ClassName
		}
		types, d := decodeTypes(raw.Java.Types)
		c.Java.Types = types
		diags = diags.Extend(d)
	}

	if raw.Output != nil {
		if raw.Output.Dir != nil {
			c.OutputDir = *raw.Output.Dir
		}
		if raw.Output.Name != nil {
			c.OutputName = *raw.Output.Name
		}
	}
	return diags
}

// decodeOptional decodes expr into target unless the attribute was omitted.
func decodeOptional(expr hcl.Expression, target any) (bool, hcl.Diagnostics) {
	if expr == nil {
		return false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return false, diags
	}
	return true, gohcl.DecodeExpression(expr, nil, target)
}

// decodeTypes reads a { "c type" = "target type" } object.
func decodeTypes(expr hcl.Expression) (map[string]string, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}

	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, diags.Append(invalid(expr, "Invalid types map", fmt.Sprintf("types must map type names to strings: %s", err)))
	}
	if !converted.IsWhollyKnown() || converted.LengthInt() == 0 {
		return nil, diags
	}

	var out map[string]string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, diags.Append(invalid(expr, "Invalid types map", err.Error()))
	}
	return out, diags
}

func invalid(expr hcl.Expression, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}
}
