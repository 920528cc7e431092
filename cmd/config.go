package cmd

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables for configuration.

var (
	dataDir    = flag.String("data-dir", "", "Directory holding the local caches (default ~/.tripledger)")
	syncURL    = flag.String("sync-url", "", "Remote store webhook URL (default $TRIPLEDGER_SYNC_URL)")
	configFile = flag.String("config", "", "Config file (default <data-dir>/config.yaml)")
)

// Config carries the resolved application settings.
type Config struct {
	DataDir string `yaml:"data_dir"`
	SyncURL string `yaml:"sync_url"`
}

var (
	configOnce sync.Once
	config     Config
)

// appConfig resolves the settings once, in precedence order: command line
// flag, then environment, then config file, then built-in default.
func appConfig() Config {
	configOnce.Do(func() {
		config = resolveConfig(*dataDir, *syncURL, *configFile, os.Getenv)
	})
	return config
}

func resolveConfig(dirFlag, urlFlag, fileFlag string, getenv func(string) string) Config {
	c := Config{DataDir: defaultDataDir()}
	if dir := getenv("TRIPLEDGER_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if dirFlag != "" {
		c.DataDir = dirFlag
	}

	path := fileFlag
	if path == "" {
		path = filepath.Join(c.DataDir, "config.yaml")
	}
	if content, err := os.ReadFile(path); err == nil {
		var file Config
		if err := yaml.Unmarshal(content, &file); err != nil {
			log.Printf("warning, ignoring unreadable config %q: %v", path, err)
		} else {
			if file.SyncURL != "" {
				c.SyncURL = file.SyncURL
			}
			// data_dir in the file only applies when neither the flag nor
			// the environment already picked one.
			if file.DataDir != "" && dirFlag == "" && getenv("TRIPLEDGER_DATA_DIR") == "" {
				c.DataDir = file.DataDir
			}
		}
	} else if fileFlag != "" {
		// An explicitly named config file must exist.
		log.Printf("warning, could not read config %q: %v", fileFlag, err)
	}

	if url := getenv("TRIPLEDGER_SYNC_URL"); url != "" {
		c.SyncURL = url
	}
	if urlFlag != "" {
		c.SyncURL = urlFlag
	}
	return c
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tripledger"
	}
	return filepath.Join(home, ".tripledger")
}
