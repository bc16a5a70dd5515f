// Package config loads and saves allofart settings.
//
// Settings are read from TOML with koanf. Without an explicit path, the
// XDG config file ($XDG_CONFIG_HOME/allofart/config.toml) is read first and
// ./config.toml overrides it. Keys missing from every file keep their
// defaults.
//
//	settings, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
//
// # Breakpoints
//
// Terminal columns are converted to width-units with cell_width. The
// navigation header switches to the drawer below nav_breakpoint units and
// the artist page stacks its sections below detail_breakpoint_rem * rem_size
// units. The two breakpoints are independent.
//
//	api_url = "https://allofart.example.com"
//	cell_width = 8
//	nav_breakpoint = 900
//	detail_breakpoint_rem = 45
package config
