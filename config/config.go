package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Conf the global configuration
var Conf Config

// LogOutput the log file
var LogOutput io.WriteCloser

func init() {
	Init()
}

// Init setting
func Init() {

	filename, _ := filepath.Abs(filepath.Join(".", ".env"))
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		Conf = Load()
	} else {
		Conf = LoadFrom(filename)
	}

	if Conf.Mode == "production" {
		Production()
	} else if Conf.Mode == "development" {
		Development()
	}
}

// LoadFrom load the config from the given env file, the variables in the
// file override the process environment.
func LoadFrom(envfile string) Config {

	file, err := filepath.Abs(envfile)
	if err != nil {
		cfg := Load()
		ReloadLog()
		return cfg
	}

	// load from env
	godotenv.Overload(file)
	cfg := Load()
	ReloadLog()
	return cfg
}

// Load the config from the process environment
func Load() Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		exception.New("Can't read config %s", 500, err.Error()).Throw()
	}

	// Root path
	cfg.Root, _ = filepath.Abs(cfg.Root)

	// Base URL without trailing slash
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// Export dir relative to root
	if cfg.ExportDir != "" && !filepath.IsAbs(cfg.ExportDir) {
		cfg.ExportDir = filepath.Join(cfg.Root, cfg.ExportDir)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10
	}

	return cfg
}

// Check the settings the site cannot start without
func (cfg Config) Check() error {
	var errs error

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("SITE_BASE_URL %q is not an absolute URL", cfg.BaseURL))
	} else if u.Path != "" {
		errs = multierror.Append(errs, fmt.Errorf("SITE_BASE_URL %q must not carry a path", cfg.BaseURL))
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("SITE_PORT %d is out of range", cfg.Port))
	}

	if (cfg.Cert == "") != (cfg.Key == "") {
		errs = multierror.Append(errs, errors.New("SITE_CERT and SITE_KEY must be set together"))
	}

	if cfg.Mode != "production" && cfg.Mode != "development" {
		errs = multierror.Append(errs, fmt.Errorf("SITE_ENV %q must be production or development", cfg.Mode))
	}
	return errs
}

// Production switch to the production mode
func Production() {
	os.Setenv("SITE_ENV", "production")
	Conf.Mode = "production"
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	gin.SetMode(gin.ReleaseMode)
	ReloadLog()
}

// Development switch to the development mode
func Development() {
	os.Setenv("SITE_ENV", "development")
	Conf.Mode = "development"
	log.SetLevel(log.TraceLevel)
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
	gin.SetMode(gin.DebugMode)
	ReloadLog()
}

// IsDevelopment the site is running in development mode
func IsDevelopment() bool {
	return Conf.Mode == "development"
}

// ReloadLog reopen the log file
func ReloadLog() {
	CloseLog()
	OpenLog()
}

// OpenLog open the log file
func OpenLog() {

	if Conf.Log == "" {
		Conf.Log = filepath.Join(Conf.Root, "logs", "site.log")
	}

	if !filepath.IsAbs(Conf.Log) {
		Conf.Log = filepath.Join(Conf.Root, Conf.Log)
	}

	logfile, err := filepath.Abs(Conf.Log)
	if err != nil {
		return
	}

	logpath := filepath.Dir(logfile)

	// Log to stdout when the log path does not exist
	if _, err := os.Stat(logpath); errors.Is(err, os.ErrNotExist) {
		log.SetOutput(os.Stdout)
		gin.DefaultWriter = os.Stdout
		return
	}

	LogOutput = &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    Conf.LogMaxSize, // megabytes
		MaxBackups: Conf.LogMaxBackups,
		MaxAge:     Conf.LogMaxAge, //days
		LocalTime:  Conf.LogLocalTime,
	}

	log.SetOutput(LogOutput)
	gin.DefaultWriter = io.MultiWriter(LogOutput)
}

// CloseLog close the log file
func CloseLog() {
	if LogOutput != nil {
		err := LogOutput.Close()
		LogOutput = nil
		if err != nil {
			log.Error("%s", err.Error())
			return
		}
	}
}
