package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tview"
	"github.com/pagegrid/pagegrid/internal/config/data"
	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/logger"
	"github.com/pagegrid/pagegrid/internal/model1"
)

// Default values
const (
	DefaultLimit          = 50
	DefaultEmptyMessage   = "No rows found."
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultSource         = "demo://"
)

// Pagegrid represents the pagegrid global configuration.
type Pagegrid struct {
	Source         data.Source   `yaml:"source"`
	Limit          int           `yaml:"limit"`
	DefaultSort    string        `yaml:"defaultSort,omitempty"`
	Filter         string        `yaml:"filter,omitempty"`
	EmptyMessage   string        `yaml:"emptyMessage"`
	RequestTimeout string        `yaml:"requestTimeout"`
	Columns        []data.Column `yaml:"columns,omitempty"`
	UI             data.UI       `yaml:"ui"`
	Logger         data.Logger   `yaml:"logger"`

	mx sync.RWMutex
}

// NewPagegrid creates a Pagegrid with default settings.
func NewPagegrid() *Pagegrid {
	return &Pagegrid{
		Source:         data.Source{URL: DefaultSource},
		Limit:          DefaultLimit,
		EmptyMessage:   DefaultEmptyMessage,
		RequestTimeout: DefaultRequestTimeout.String(),
		Logger:         data.Logger{Level: DefaultLogLevel},
	}
}

// Clone returns a deep copy of the settings.
func (p *Pagegrid) Clone() *Pagegrid {
	p.mx.RLock()
	defer p.mx.RUnlock()

	src := p.Source
	src.SortKeys = maps.Clone(p.Source.SortKeys)
	src.Fields = slices.Clone(p.Source.Fields)
	src.FilterFields = slices.Clone(p.Source.FilterFields)

	return &Pagegrid{
		Source:         src,
		Limit:          p.Limit,
		DefaultSort:    p.DefaultSort,
		Filter:         p.Filter,
		EmptyMessage:   p.EmptyMessage,
		RequestTimeout: p.RequestTimeout,
		Columns:        slices.Clone(p.Columns),
		UI:             p.UI,
		Logger:         p.Logger,
	}
}

// Validate fills in defaults and checks the settings.
func (p *Pagegrid) Validate() error {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.Source.URL == "" {
		p.Source.URL = DefaultSource
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.RequestTimeout == "" {
		p.RequestTimeout = DefaultRequestTimeout.String()
	}
	if p.Logger.Level == "" {
		p.Logger.Level = DefaultLogLevel
	}

	var errs []error
	if _, err := model1.ParseSort(p.DefaultSort); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.ParseDuration(p.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid request timeout %q: %w", p.RequestTimeout, err))
	}
	if p.Source.CacheTTL != "" {
		if _, err := time.ParseDuration(p.Source.CacheTTL); err != nil {
			errs = append(errs, fmt.Errorf("invalid cache ttl %q: %w", p.Source.CacheTTL, err))
		}
	}
	if _, err := logger.ParseLevel(p.Logger.Level); err != nil {
		errs = append(errs, err)
	}
	for i, c := range p.Columns {
		if c.Field == "" {
			errs = append(errs, fmt.Errorf("column #%d: missing field", i+1))
		}
		if _, err := alignment(c.Align); err != nil {
			errs = append(errs, fmt.Errorf("column %q: %w", c.Field, err))
		}
	}

	return errors.Join(errs...)
}

// Override applies CLI flag overrides to the configuration.
func (p *Pagegrid) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if IsStringSet(flags.Source) {
		p.Source.URL = *flags.Source
	}
	if IsIntSet(flags.Limit) {
		p.Limit = *flags.Limit
	}
	if IsStringSet(flags.Sort) {
		p.DefaultSort = *flags.Sort
	}
	if IsStringSet(flags.Filter) {
		p.Filter = *flags.Filter
	}
	if IsStringSet(flags.EmptyMessage) {
		p.EmptyMessage = *flags.EmptyMessage
	}
	if IsStringSet(flags.LogLevel) {
		p.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		p.Logger.File = *flags.LogFile
	}
	if IsBoolSet(flags.Wide) {
		p.UI.Wide = true
	}
	if IsStringSet(flags.Profile) {
		p.Source.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		p.Source.Region = *flags.Region
	}
}

// GetRequestTimeout returns the parsed request timeout duration.
func (p *Pagegrid) GetRequestTimeout() (time.Duration, error) {
	p.mx.RLock()
	timeoutStr := p.RequestTimeout
	p.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid request timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// SortDescriptor returns the initial sort descriptor.
func (p *Pagegrid) SortDescriptor() model1.SortDescriptor {
	p.mx.RLock()
	defer p.mx.RUnlock()

	s, _ := model1.ParseSort(p.DefaultSort)

	return s
}

// InitialFilter returns the initial filter.
func (p *Pagegrid) InitialFilter() model1.Filter {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return model1.Filter{Query: p.Filter}
}

// SourceSpec returns the dao source settings. When no sort keys are
// configured, the sortable columns define them.
func (p *Pagegrid) SourceSpec() (dao.SourceSpec, error) {
	p.mx.RLock()
	defer p.mx.RUnlock()

	spec := dao.SourceSpec{
		URL:          p.Source.URL,
		Table:        p.Source.Table,
		IDField:      p.Source.IDField,
		Path:         p.Source.Path,
		Fields:       p.Source.Fields,
		FilterFields: p.Source.FilterFields,
		Profile:      p.Source.Profile,
		Region:       p.Source.Region,
		SortKeys:     p.Source.SortKeys,
	}
	if len(spec.SortKeys) == 0 && len(p.Columns) > 0 {
		spec.SortKeys = make(map[string]string, len(p.Columns))
		for _, c := range p.Columns {
			if c.SortKey != "" {
				spec.SortKeys[c.SortKey] = c.Field
			}
		}
	}

	var err error
	if spec.Timeout, err = time.ParseDuration(p.RequestTimeout); err != nil {
		return spec, fmt.Errorf("invalid request timeout %q: %w", p.RequestTimeout, err)
	}
	if p.Source.CacheTTL != "" {
		if spec.CacheTTL, err = time.ParseDuration(p.Source.CacheTTL); err != nil {
			return spec, fmt.Errorf("invalid cache ttl %q: %w", p.Source.CacheTTL, err)
		}
	}

	return spec, nil
}

// HasColumns returns true if columns are configured.
func (p *Pagegrid) HasColumns() bool {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return len(p.Columns) > 0
}

// SetColumns replaces the column settings.
func (p *Pagegrid) SetColumns(cc []data.Column) {
	p.mx.Lock()
	defer p.mx.Unlock()

	p.Columns = cc
}

// GridColumns builds the grid columns. Wide columns only show when wide
// returns true.
func (p *Pagegrid) GridColumns(wide func() bool) model1.Columns {
	p.mx.RLock()
	defer p.mx.RUnlock()

	cc := make(model1.Columns, 0, len(p.Columns))
	for _, c := range p.Columns {
		label := c.Label
		if label == "" {
			label = strings.ToUpper(c.Field)
		}
		align, _ := alignment(c.Align)
		col := model1.Column{
			SortKey:  c.SortKey,
			Label:    label,
			CSSClass: c.CSS,
			Width:    c.Width,
			Field:    c.Field,
			Align:    align,
		}
		if c.Wide {
			col.VisibleWhen = wide
		}
		cc = append(cc, col)
	}

	return cc
}

// LoggerOptions returns the logger settings.
func (p *Pagegrid) LoggerOptions() logger.Options {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return logger.Options{
		Level:      p.Logger.Level,
		File:       p.Logger.File,
		MaxSizeMB:  p.Logger.MaxSizeMB,
		MaxBackups: p.Logger.MaxBackups,
	}
}

// ColumnsFor derives sortable column settings from row fields.
func ColumnsFor(fields []string) []data.Column {
	cc := make([]data.Column, 0, len(fields))
	for _, f := range fields {
		cc = append(cc, data.Column{Field: f, SortKey: f})
	}

	return cc
}

func alignment(s string) (int, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return tview.AlignLeft, nil
	case "center":
		return tview.AlignCenter, nil
	case "right":
		return tview.AlignRight, nil
	default:
		return tview.AlignLeft, fmt.Errorf("invalid alignment %q", s)
	}
}
