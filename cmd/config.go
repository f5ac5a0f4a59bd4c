/**************************************************************************************************
** Configuration and environment management for the photo-reports CLI application.
** Handles logger configuration, environment variable loading, and the JSON config file.
**************************************************************************************************/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Global configuration variables
var configPath string
var rootPath string
var locale string
var logLevel string
var logFormat string
var extensions string
var seed int64
var dryRun bool
var debugMode bool
var pickOne bool
var noRotate bool

/**************************************************************************************************
** Configures the logger from the --log-level and --log-format flags, falling back to the
** LOG_LEVEL and LOG_FORMAT environment variables. The --debug flag forces debug level.
**
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func configureLogger() *logrus.Logger {
	logger := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if parsedLevel, err := logrus.ParseLevel(logLevel); err == nil {
			logger.SetLevel(parsedLevel)
		} else {
			logger.Warnf("Invalid log level '%s', using default 'info'", logLevel)
			logger.SetLevel(logrus.InfoLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
	}

	if logFormat == "" {
		logFormat = os.Getenv("LOG_FORMAT")
	}
	if logFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			FullTimestamp:    false,
			TimestampFormat:  time.RFC3339,
		})
	}

	return logger
}

/**************************************************************************************************
** Loads environment variables, the JSON config file and command-line flags, with flags taking
** precedence over env variables and both over the file. Fatal on a missing or invalid config:
** no run can proceed without a root folder, a start time and locations.
**
** @return *logrus.Logger - Configured logger instance
** @return *utils.TConfig - Validated run configuration
**************************************************************************************************/
func loadEnv() (*logrus.Logger, *utils.TConfig) {
	_ = godotenv.Load()
	logger := configureLogger()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		logger.Fatalf("Could not load config: %v", err)
	}

	if rootPath == "" {
		rootPath = os.Getenv("FOLDER_PATH")
	}
	if rootPath != "" {
		cfg.FolderPath = rootPath
	}
	if locale == "" {
		locale = os.Getenv("LOCALE")
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if pickOne {
		cfg.PickOne = true
	}
	if noRotate {
		rotate := false
		cfg.Rotate = &rotate
	}
	// The default flag value leaves a whitelist from the config file in place.
	if extensions != "" && extensions != utils.DefaultImageExtensionsString {
		cfg.Extensions = utils.ParseExtensions(extensions)
	}
	if !dryRun {
		dryRun = os.Getenv("DRY_RUN") == "true"
	}
	if dryRun {
		logger.Info("DRY_RUN is set to true, no files will be written")
	}
	if seed == 0 {
		if val := os.Getenv("SEED"); val != "" {
			if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
				seed = intVal
			}
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	return logger, cfg
}

/**************************************************************************************************
** Reads and parses the flat JSON configuration file.
**
** @param path - Config file path
** @return *utils.TConfig - Parsed configuration, not yet validated
** @return error - Read or parse failure
**************************************************************************************************/
func loadConfig(path string) (*utils.TConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	cfg := &utils.TConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return cfg, nil
}
