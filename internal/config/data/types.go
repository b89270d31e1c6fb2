// Package data provides configuration data types for the pagegrid application.
package data

// Flags represents CLI command-line flags for the pagegrid application.
type Flags struct {
	Source       *string // Source url
	Limit        *int    // Page size
	Sort         *string // Initial sort descriptor
	Filter       *string // Initial filter query
	EmptyMessage *string // Text shown when there are no rows
	LogLevel     *string // Log level (e.g., debug, info, warn, error)
	LogFile      *string // Path to log file
	ConfigFile   *string // Alternate configuration file
	Wide         *bool   // Show wide columns
	Profile      *string // AWS profile for s3 sources
	Region       *string // AWS region for s3 sources
}

// Source represents the data source settings.
type Source struct {
	URL          string            `yaml:"url"`
	Table        string            `yaml:"table,omitempty"`
	IDField      string            `yaml:"idField,omitempty"`
	Path         string            `yaml:"path,omitempty"`
	SortKeys     map[string]string `yaml:"sortKeys,omitempty"`
	Fields       []string          `yaml:"fields,omitempty"`
	FilterFields []string          `yaml:"filterFields,omitempty"`
	Profile      string            `yaml:"profile,omitempty"`
	Region       string            `yaml:"region,omitempty"`
	CacheTTL     string            `yaml:"cacheTTL,omitempty"`
}

// Column represents a grid column setting.
type Column struct {
	Field   string `yaml:"field"`
	Label   string `yaml:"label,omitempty"`
	SortKey string `yaml:"sortKey,omitempty"`
	CSS     string `yaml:"css,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Align   string `yaml:"align,omitempty"`
	Wide    bool   `yaml:"wide,omitempty"`
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Wide        bool `yaml:"wide"`
	NoIcons     bool `yaml:"noIcons"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		Source:       new(string),
		Limit:        new(int),
		Sort:         new(string),
		Filter:       new(string),
		EmptyMessage: new(string),
		LogLevel:     new(string),
		LogFile:      new(string),
		ConfigFile:   new(string),
		Wide:         new(bool),
		Profile:      new(string),
		Region:       new(string),
	}
}
