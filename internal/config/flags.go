package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config  string
	Debug   bool
	Surface string
	Width   int
	Height  int
	Data    string
}

// RegisterFlags binds the shared geoheat flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Surface, "surface", "", "Surface kind: flat or round")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.Data, "data", "", "Path to dataset JSON")
	return f
}

// apply copies the set overrides onto cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Surface != "" {
		cfg.Surface.Kind = f.Surface
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Data != "" {
		cfg.Data.Path = f.Data
	}
}
