package monitor

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UISettings holds UI preferences that survive across sessions. They are
// purely local: the daemon never sees collapse state or selection.
type UISettings struct {
	CollapsedGroups []string `yaml:"collapsed_groups,omitempty"`
	SelectedGroup   string   `yaml:"selected_group,omitempty"`
}

const uiSettingsFile = "ui-settings.yaml"

// LoadUISettings loads UI settings from the settings directory, falling
// back to empty settings when the file is missing or unreadable.
func LoadUISettings(dir string) *UISettings {
	settings := &UISettings{}
	if dir == "" {
		return settings
	}

	data, err := os.ReadFile(filepath.Join(dir, uiSettingsFile))
	if err != nil {
		return settings
	}
	var loaded UISettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return settings
	}
	return &loaded
}

// SaveUISettings writes UI settings to the settings directory.
func SaveUISettings(dir string, settings *UISettings) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, uiSettingsFile), data, 0644)
}
