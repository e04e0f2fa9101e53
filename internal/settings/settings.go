// internal/settings/settings.go
// Package settings holds the display configuration shared by every report
// renderer. A Settings value is immutable: Set returns a modified copy.
package settings

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Option names recognized by Settings.Set.
const (
	OutputPrefix = "outputprefix"
	OutputDir    = "outputdir"
	Format       = "format"
	SizeFormat   = "sizeformat"
	XLabel       = "xlabel"
	YLabel       = "ylabel"
	Title        = "title"
	TimeUnit     = "timeunit"
	Statistic    = "statistic"
	Confidence   = "confidence"
	Width        = "width"
	Height       = "height"
	BarsPerPlot  = "barsperplot"
	LogScale     = "logscale"
	ErrorBars    = "errorbars"
)

var (
	// ErrUnknownOption is returned for option names that are not registered.
	ErrUnknownOption = errors.New("unknown settings option")
	// ErrInvalidValue is returned when a value cannot be coerced or fails validation.
	ErrInvalidValue = errors.New("invalid settings value")
)

// Kind identifies the value type stored for an option.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Option describes one recognized setting.
type Option struct {
	Name        string
	Kind        Kind
	Default     any
	Description string
	validate    func(any) error
}

var registry = []Option{
	{Name: OutputPrefix, Kind: KindString, Default: "benchmark", Description: "file name prefix of every artifact", validate: nonEmpty},
	{Name: OutputDir, Kind: KindString, Default: ".", Description: "directory the artifacts are written to", validate: nonEmpty},
	{Name: Format, Kind: KindString, Default: "png", Description: "image format (png, svg, pdf, jpg, eps, tif)", validate: oneOf("png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff")},
	{Name: SizeFormat, Kind: KindString, Default: "{:d}", Description: "template for input size labels, e.g. \"{:d} points\"", validate: validSizeFormat},
	{Name: XLabel, Kind: KindString, Default: "Input size", Description: "x axis label"},
	{Name: YLabel, Kind: KindString, Default: "Time", Description: "y axis label, the time unit is appended"},
	{Name: Title, Kind: KindString, Default: "", Description: "plot title"},
	{Name: TimeUnit, Kind: KindString, Default: "auto", Description: "time unit (auto, ns, us, ms, s)", validate: oneOf("auto", "ns", "us", "ms", "s")},
	{Name: Statistic, Kind: KindString, Default: "median", Description: "statistic plotted per size (median, mean, min)", validate: oneOf("median", "mean", "min")},
	{Name: Confidence, Kind: KindFloat, Default: 0.95, Description: "confidence level of the plotted intervals", validate: openUnitInterval},
	{Name: Width, Kind: KindFloat, Default: 8.0, Description: "image width in inches", validate: positiveFloat},
	{Name: Height, Kind: KindFloat, Default: 5.0, Description: "image height in inches", validate: positiveFloat},
	{Name: BarsPerPlot, Kind: KindInt, Default: 8, Description: "input sizes per bar plot before paging", validate: positiveInt},
	{Name: LogScale, Kind: KindBool, Default: false, Description: "logarithmic y axis on line plots"},
	{Name: ErrorBars, Kind: KindBool, Default: true, Description: "draw confidence intervals on line plots"},
}

var byName = func() map[string]*Option {
	m := make(map[string]*Option, len(registry))
	for i := range registry {
		m[registry[i].Name] = &registry[i]
	}
	return m
}()

// Settings is an immutable set of option values. Options that were never set
// report their registered default, so the zero value equals Default.
type Settings struct {
	values map[string]any
	err    error
}

// Default is the base configuration every override chain starts from.
var Default = Settings{}

// Set returns a copy of s with the named option replaced by value. An unknown
// name or an unusable value is recorded and reported by Err; the first error
// in a chain wins and later overrides are ignored.
func (s Settings) Set(name string, value any) Settings {
	next := Settings{values: maps.Clone(s.values), err: s.err}
	if next.values == nil {
		next.values = make(map[string]any, 1)
	}
	if next.err != nil {
		return next
	}

	opt, ok := lookup(name)
	if !ok {
		next.err = fmt.Errorf("%w: %q", ErrUnknownOption, name)
		return next
	}
	v, err := opt.coerce(value)
	if err != nil {
		next.err = fmt.Errorf("option %q: %w", opt.Name, err)
		return next
	}
	next.values[opt.Name] = v
	return next
}

// Apply sets every entry of overrides, in sorted name order.
func (s Settings) Apply(overrides map[string]any) Settings {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s = s.Set(name, overrides[name])
	}
	return s
}

// Err reports the first error recorded by Set.
func (s Settings) Err() error {
	return s.err
}

// Get returns the effective value of the named option.
func (s Settings) Get(name string) (any, bool) {
	opt, ok := lookup(name)
	if !ok {
		return nil, false
	}
	if v, ok := s.values[opt.Name]; ok {
		return v, true
	}
	return opt.Default, true
}

// IsSet reports whether the option was overridden.
func (s Settings) IsSet(name string) bool {
	opt, ok := lookup(name)
	if !ok {
		return false
	}
	_, ok = s.values[opt.Name]
	return ok
}

func (s Settings) String(name string) string {
	v, _ := s.Get(name)
	return cast.ToString(v)
}

func (s Settings) Int(name string) int {
	v, _ := s.Get(name)
	return cast.ToInt(v)
}

func (s Settings) Float(name string) float64 {
	v, _ := s.Get(name)
	return cast.ToFloat64(v)
}

func (s Settings) Bool(name string) bool {
	v, _ := s.Get(name)
	return cast.ToBool(v)
}

func (s Settings) OutputPrefix() string { return s.String(OutputPrefix) }
func (s Settings) OutputDir() string    { return s.String(OutputDir) }
func (s Settings) SizeFormat() string   { return s.String(SizeFormat) }
func (s Settings) XLabel() string       { return s.String(XLabel) }
func (s Settings) YLabel() string       { return s.String(YLabel) }
func (s Settings) Title() string        { return s.String(Title) }
func (s Settings) TimeUnit() string     { return s.String(TimeUnit) }
func (s Settings) Statistic() string    { return s.String(Statistic) }
func (s Settings) Confidence() float64  { return s.Float(Confidence) }
func (s Settings) Width() float64       { return s.Float(Width) }
func (s Settings) Height() float64      { return s.Float(Height) }
func (s Settings) BarsPerPlot() int     { return s.Int(BarsPerPlot) }
func (s Settings) LogScale() bool       { return s.Bool(LogScale) }
func (s Settings) ErrorBars() bool      { return s.Bool(ErrorBars) }

// Format returns the image format, normalizing the long spellings.
func (s Settings) Format() string {
	switch f := s.String(Format); f {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return f
	}
}

// Equal reports whether both values carry the same effective options and
// agree on whether an error was recorded.
func (s Settings) Equal(other Settings) bool {
	if (s.err == nil) != (other.err == nil) {
		return false
	}
	for _, opt := range registry {
		a, _ := s.Get(opt.Name)
		b, _ := other.Get(opt.Name)
		if a != b {
			return false
		}
	}
	return true
}

// Options lists the registered options sorted by name.
func Options() []Option {
	out := make([]Option, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseAssignments turns "name=value" pairs into an override map.
func ParseAssignments(assignments []string) (map[string]any, error) {
	out := make(map[string]any, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", ErrInvalidValue, a)
		}
		out[name] = value
	}
	return out, nil
}

func lookup(name string) (*Option, bool) {
	opt, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return opt, ok
}

func (o *Option) coerce(value any) (any, error) {
	var (
		v   any
		err error
	)
	switch o.Kind {
	case KindInt:
		v, err = cast.ToIntE(value)
	case KindFloat:
		v, err = cast.ToFloat64E(value)
	case KindBool:
		v, err = cast.ToBoolE(value)
	default:
		v, err = cast.ToStringE(value)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if o.validate != nil {
		if err := o.validate(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	return v, nil
}

func nonEmpty(v any) error {
	if strings.TrimSpace(v.(string)) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func oneOf(allowed ...string) func(any) error {
	return func(v any) error {
		s := v.(string)
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %s", s, strings.Join(allowed, ", "))
	}
}

func openUnitInterval(v any) error {
	f := v.(float64)
	if f <= 0 || f >= 1 {
		return fmt.Errorf("%v is outside (0, 1)", f)
	}
	return nil
}

func positiveFloat(v any) error {
	if v.(float64) <= 0 {
		return fmt.Errorf("%v must be positive", v)
	}
	return nil
}

func positiveInt(v any) error {
	if v.(int) < 1 {
		return fmt.Errorf("%v must be at least 1", v)
	}
	return nil
}

func validSizeFormat(v any) error {
	_, err := FormatSize(v.(string), 0)
	return err
}
