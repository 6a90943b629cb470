package config

const (
	defaultMediaRoot         = "~/portfolio/bulk-upload-media"
	defaultLogDir            = "~/.local/share/portfolioctl/logs"
	defaultIndexPath         = "~/.local/share/portfolioctl/media-index.db"
	defaultCSVFile           = "projects.csv"
	defaultAuthScheme        = "basic"
	defaultContentType       = "projects"
	defaultRequestTimeout    = 60
	defaultResolverStrategy  = "id"
	defaultRequestsPerSecond = 2.0
	defaultBurst             = 4
	defaultLookupDelayMS     = 300
	defaultUploadDelayMS     = 500
	defaultRecordDelayMS     = 500
	defaultProjectDelayMS    = 1000
	defaultBrowser           = "chromium"
	defaultNavigationTimeout = 90
	defaultSettleDelayMS     = 4000
	defaultFallbackDelayMS   = 2000
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaRoot: defaultMediaRoot,
			LogDir:    defaultLogDir,
			IndexPath: defaultIndexPath,
			CSVFile:   defaultCSVFile,
		},
		API: API{
			AuthScheme:     defaultAuthScheme,
			ContentType:    defaultContentType,
			RequestTimeout: defaultRequestTimeout,
		},
		Resolver: Resolver{
			Strategy: defaultResolverStrategy,
		},
		Pacing: Pacing{
			RequestsPerSecond: defaultRequestsPerSecond,
			Burst:             defaultBurst,
			LookupDelayMS:     defaultLookupDelayMS,
			UploadDelayMS:     defaultUploadDelayMS,
			RecordDelayMS:     defaultRecordDelayMS,
			ProjectDelayMS:    defaultProjectDelayMS,
		},
		Screenshots: Screenshots{
			Browser:           defaultBrowser,
			NavigationTimeout: defaultNavigationTimeout,
			SettleDelayMS:     defaultSettleDelayMS,
			FallbackDelayMS:   defaultFallbackDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
