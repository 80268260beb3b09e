package format

// Config controls a single format pass.
//
// Only IndentSize shapes the output. MaxLineLength feeds the advisory
// LongLines report. The brace, parenthesis, comma and trailing comment fields
// are accepted and carried through configuration but do not change output.
type Config struct {
	IndentSize            int
	MaxLineLength         int
	BreakBeforeBrace      bool
	SpaceBeforeParens     bool
	SpaceInEmptyParens    bool
	SpaceBeforeComma      bool
	SpaceAfterComma       bool
	AlignTrailingComments bool
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		IndentSize:            4,
		MaxLineLength:         80,
		BreakBeforeBrace:      false,
		SpaceBeforeParens:     true,
		SpaceInEmptyParens:    false,
		SpaceBeforeComma:      false,
		SpaceAfterComma:       true,
		AlignTrailingComments: true,
	}
}

// Overrides is a partial Config. Nil fields keep the base value.
type Overrides struct {
	IndentSize            *int  `toml:"indent_size" yaml:"indent_size" json:"indent_size,omitempty"`
	MaxLineLength         *int  `toml:"max_line_length" yaml:"max_line_length" json:"max_line_length,omitempty"`
	BreakBeforeBrace      *bool `toml:"break_before_brace" yaml:"break_before_brace" json:"break_before_brace,omitempty"`
	SpaceBeforeParens     *bool `toml:"space_before_parens" yaml:"space_before_parens" json:"space_before_parens,omitempty"`
	SpaceInEmptyParens    *bool `toml:"space_in_empty_parens" yaml:"space_in_empty_parens" json:"space_in_empty_parens,omitempty"`
	SpaceBeforeComma      *bool `toml:"space_before_comma" yaml:"space_before_comma" json:"space_before_comma,omitempty"`
	SpaceAfterComma       *bool `toml:"space_after_comma" yaml:"space_after_comma" json:"space_after_comma,omitempty"`
	AlignTrailingComments *bool `toml:"align_trailing_comments" yaml:"align_trailing_comments" json:"align_trailing_comments,omitempty"`
}

// Apply merges o onto base and returns the result. base is not modified.
// An IndentSize below 1 is ignored.
func (o Overrides) Apply(base Config) Config {
	cfg := base
	if o.IndentSize != nil && *o.IndentSize >= 1 {
		cfg.IndentSize = *o.IndentSize
	}
	if o.MaxLineLength != nil {
		cfg.MaxLineLength = *o.MaxLineLength
	}
	if o.BreakBeforeBrace != nil {
		cfg.BreakBeforeBrace = *o.BreakBeforeBrace
	}
	if o.SpaceBeforeParens != nil {
		cfg.SpaceBeforeParens = *o.SpaceBeforeParens
	}
	if o.SpaceInEmptyParens != nil {
		cfg.SpaceInEmptyParens = *o.SpaceInEmptyParens
	}
	if o.SpaceBeforeComma != nil {
		cfg.SpaceBeforeComma = *o.SpaceBeforeComma
	}
	if o.SpaceAfterComma != nil {
		cfg.SpaceAfterComma = *o.SpaceAfterComma
	}
	if o.AlignTrailingComments != nil {
		cfg.AlignTrailingComments = *o.AlignTrailingComments
	}
	return cfg
}

// Resolve applies o to DefaultConfig.
func (o Overrides) Resolve() Config {
	return o.Apply(DefaultConfig())
}

// Merge layers other on top of o: fields set in other win.
func (o Overrides) Merge(other Overrides) Overrides {
	out := o
	if other.IndentSize != nil {
		out.IndentSize = other.IndentSize
	}
	if other.MaxLineLength != nil {
		out.MaxLineLength = other.MaxLineLength
	}
	if other.BreakBeforeBrace != nil {
		out.BreakBeforeBrace = other.BreakBeforeBrace
	}
	if other.SpaceBeforeParens != nil {
		out.SpaceBeforeParens = other.SpaceBeforeParens
	}
	if other.SpaceInEmptyParens != nil {
		out.SpaceInEmptyParens = other.SpaceInEmptyParens
	}
	if other.SpaceBeforeComma != nil {
		out.SpaceBeforeComma = other.SpaceBeforeComma
	}
	if other.SpaceAfterComma != nil {
		out.SpaceAfterComma = other.SpaceAfterComma
	}
	if other.AlignTrailingComments != nil {
		out.AlignTrailingComments = other.AlignTrailingComments
	}
	return out
}

// Int returns a pointer to v, for building Overrides literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool { return &v }
