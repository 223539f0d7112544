// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.3.0"

var (
	configDir      = "studytrack"
	configFileName = "config.yml"
	dbFileName     = "studytrack.db"
	logFileName    = "studytrack.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

var Stdout io.Writer = os.Stdout

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("STUDYTRACK_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("studytrack_%s.db", env)
		logFileName = fmt.Sprintf("studytrack_%s.log", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath, err = xdg.DataFile(
		filepath.Join(configDir, "log", logFileName),
	)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
