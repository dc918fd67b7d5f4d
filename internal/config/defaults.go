package config

const (
	defaultDataDir        = "~/.local/share/fieldlens"
	defaultLogDir         = "~/.local/share/fieldlens/logs"
	defaultVisionBaseURL  = "https://openrouter.ai/api/v1/chat/completions"
	defaultVisionModel    = "google/gemini-2.5-flash"
	defaultVisionReferer  = "https://github.com/fieldlens/fieldlens"
	defaultVisionTitle    = "Fieldlens Photo Review"
	defaultVisionTimeout  = 60
	defaultBatchWorkers   = 5
	defaultMaxImageMiB    = 20
	defaultDamagedDir     = "Sorted_Images/Damaged"
	defaultCleanDir       = "Sorted_Images/No_Damage"
	defaultResultsFile    = "Analysis_Results/analysis_results.json"
	defaultReviewBind     = "127.0.0.1:5050"
	defaultReviewDataFile = "inspection_data.json"
	defaultReviewBackups  = "backups"
	defaultReportTitle    = "Inspection Report"
	defaultReportOutput   = "Inspection_Report.html"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Vision: Vision{
			BaseURL:        defaultVisionBaseURL,
			Model:          defaultVisionModel,
			Referer:        defaultVisionReferer,
			Title:          defaultVisionTitle,
			TimeoutSeconds: defaultVisionTimeout,
		},
		Batch: Batch{
			Workers:     defaultBatchWorkers,
			MaxImageMiB: defaultMaxImageMiB,
		},
		Sort: Sort{
			DamagedDir: defaultDamagedDir,
			CleanDir:   defaultCleanDir,
		},
		Analyze: Analyze{
			ResultsFile: defaultResultsFile,
		},
		Review: Review{
			Bind:      defaultReviewBind,
			DataFile:  defaultReviewDataFile,
			BackupDir: defaultReviewBackups,
			FilesRoot: ".",
		},
		Report: Report{
			Title:      defaultReportTitle,
			OutputFile: defaultReportOutput,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
