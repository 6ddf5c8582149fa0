package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			ConfirmDelete: true,
			RecycleBin: RecycleBinConfig{
				// resolved from FILEOPS_RECYCLE_BIN when empty
				Path: "",
				Filter: FilterConfig{
					Include: IncludeConfig{
						Period: 0,
					},
					Exclude: ExcludeConfig{
						Files:    []string{".DS_Store"},
						Patterns: []string{},
						Globs:    []string{},
						Size:     SizeConfig{},
					},
				},
			},
			Elevation: ElevationConfig{
				Enabled: true,
				Mode:    "socket",
				Command: "pkexec",
				Timeout: "",
			},
			Banner: BannerConfig{
				CompletionAfter:   "10s",
				ProgressThreshold: 3,
			},
			Audit: AuditConfig{
				Enabled: true,
			},
			Logging: LoggingConfig{
				Enabled: false,
				Level:   "info",
				Rotation: RotationConfig{
					MaxSize:  "10MB",
					MaxFiles: 3,
				},
			},
		},
		UI: UI{
			Style: StyleConfig{
				Banner: BannerStyle{
					Ongoing: "#5FAFD7",
					Success: "#5FB458",
					Error:   "#FF007F",
				},
				Prompt: "#AD58B4",
			},
		},
	}
}
