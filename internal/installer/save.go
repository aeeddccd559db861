package installer

import "fmm-setup/internal/config"

// SaveConfigStages returns the stages that persist cfg to path.
func SaveConfigStages(path string, cfg config.InstallConfig) []Stage {
	return []Stage{
		{
			Label:    "Saving configuration...",
			Progress: 0.50,
			Run: func() error {
				return config.Save(path, cfg)
			},
		},
		{
			Label:    "Configuration saved!",
			Progress: 1,
		},
	}
}
