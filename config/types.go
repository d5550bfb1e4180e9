package config

// Config the site configuration
type Config struct {
	Mode          string   `json:"mode,omitempty" env:"SITE_ENV" envDefault:"production"`                            // production | development
	Root          string   `json:"root,omitempty" env:"SITE_ROOT" envDefault:"."`                                     // Working directory, the logs directory lives here
	Host          string   `json:"host,omitempty" env:"SITE_HOST" envDefault:"0.0.0.0"`                               // Listening address
	Port          int      `json:"port,omitempty" env:"SITE_PORT" envDefault:"5099"`                                  // Listening port
	BaseURL       string   `json:"base_url,omitempty" env:"SITE_BASE_URL" envDefault:"https://www.invoiceflow.co.uk"` // Canonical origin, used by sitemap, feeds and JSON-LD
	Cert          string   `json:"cert,omitempty" env:"SITE_CERT"`                                                    // HTTPS certificate file
	Key           string   `json:"key,omitempty" env:"SITE_KEY"`                                                      // HTTPS certificate key
	Log           string   `json:"log,omitempty" env:"SITE_LOG"`                                                      // Log file
	LogMode       string   `json:"log_mode,omitempty" env:"SITE_LOG_MODE" envDefault:"TEXT"`                          // JSON | TEXT
	LogMaxSize    int      `json:"log_max_size,omitempty" env:"SITE_LOG_MAX_SIZE" envDefault:"100"`                   // megabytes
	LogMaxBackups int      `json:"log_max_backups,omitempty" env:"SITE_LOG_MAX_BACKUPS" envDefault:"3"`               // files
	LogMaxAge     int      `json:"log_max_age,omitempty" env:"SITE_LOG_MAX_AGE" envDefault:"28"`                      // days
	LogLocalTime  bool     `json:"log_local_time,omitempty" env:"SITE_LOG_LOCAL_TIME"`                                // Use local time in rotated file names
	AllowFrom     []string `json:"allowfrom,omitempty" envSeparator:"|" env:"SITE_ALLOW_FROM"`                        // CORS origins for /api, the separator is |
	Timeout       int      `json:"timeout,omitempty" env:"SITE_TIMEOUT" envDefault:"10"`                              // Graceful shutdown timeout in seconds
	ExportDir     string   `json:"export_dir,omitempty" env:"SITE_EXPORT_DIR" envDefault:"dist"`                      // Static export directory
	Gzip          bool     `json:"gzip,omitempty" env:"SITE_GZIP" envDefault:"true"`                                  // Compress responses
}
