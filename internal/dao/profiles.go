package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

const configProfilePrefix = "profile "

// AWSProfiles lists the profiles declared in the shared aws credentials and
// config files. Missing files are skipped.
func AWSProfiles() ([]string, error) {
	files := []struct {
		path   string
		config bool
	}{
		{path: sharedFile("AWS_SHARED_CREDENTIALS_FILE", "credentials")},
		{path: sharedFile("AWS_CONFIG_FILE", "config"), config: true},
	}

	set := make(map[string]struct{})
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}
		cfg, err := ini.Load(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f.path, err)
		}
		for _, s := range cfg.Sections() {
			name := s.Name()
			if name == ini.DefaultSection {
				continue
			}
			if f.config {
				name = strings.TrimPrefix(name, configProfilePrefix)
			}
			set[name] = struct{}{}
		}
	}

	pp := make([]string, 0, len(set))
	for p := range set {
		pp = append(pp, p)
	}
	sort.Strings(pp)

	return pp, nil
}

// CheckProfile ensures a profile is declared in the shared aws files.
func CheckProfile(name string) error {
	pp, err := AWSProfiles()
	if err != nil {
		return err
	}
	for _, p := range pp {
		if p == name {
			return nil
		}
	}

	return fmt.Errorf("%w: %q (known: %s)", ErrUnknownProfile, name, strings.Join(pp, ", "))
}

func sharedFile(env, name string) string {
	if p := os.Getenv(env); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aws", name)
	}

	return filepath.Join(home, ".aws", name)
}
