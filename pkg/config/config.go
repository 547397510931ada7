// Package config is a small toml-backed settings store shared by the API
// server and the proxy binary.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds everything either binary needs: the worksheet file the CRUD
// API serves, the listen addresses, and the proxy's allow list and key.
type Settings struct {
	WorkbookPath       string
	DisableBackups     bool
	ListenAddress      string
	ProxyListenAddress string
	AllowedHosts       []string
	OpenMeteoAPIKey    string
	ProxyTimeoutSecs   int
}

type Datastore struct {
	Filename string
	Settings Settings
}

// Save writes the current settings out to the toml file.
func (c *Datastore) Save() error {
	b, err := toml.Marshal(c.Settings)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load reads the settings from the toml file.
func (c *Datastore) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Settings)
}

// NewDatastore loads settings from filename, writing a fresh file when none
// exists, and fills in defaults for anything unset. The Open-Meteo key can
// always be overridden from the environment.
func NewDatastore(filename string) (*Datastore, error) {
	c := &Datastore{Filename: filename}
	if err := c.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := c.Save(); err != nil {
			return nil, err
		}
	}
	// Set some defaults
	if c.Settings.WorkbookPath == "" {
		c.Settings.WorkbookPath = "MoviesShows.xlsx"
	}
	if c.Settings.ListenAddress == "" {
		c.Settings.ListenAddress = ":5000"
	}
	if c.Settings.ProxyListenAddress == "" {
		c.Settings.ProxyListenAddress = ":5005"
	}
	if c.Settings.ProxyTimeoutSecs == 0 {
		c.Settings.ProxyTimeoutSecs = 10
	}
	if key := os.Getenv("OPENMETEO_API_KEY"); key != "" {
		c.Settings.OpenMeteoAPIKey = key
	}
	return c, nil
}
