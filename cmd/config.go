package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/config"
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/logging"
	"github.com/twiced-technology-gmbh/dayplan/internal/output"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify planner configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	accessors := storageConfigAccessors()
	addPlannerConfigAccessors(accessors)
	return accessors
}

func storageConfigAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"storage.driver": {
			get: func(c *config.Config) any { return c.Storage.Driver },
			set: func(c *config.Config, v string) error {
				return oneOf("storage.driver", v, kv.Drivers, func() { c.Storage.Driver = v })
			},
			writable: true,
		},
		"storage.path": {
			get:      func(c *config.Config) any { return c.Storage.Path },
			set:      func(c *config.Config, v string) error { c.Storage.Path = v; return nil },
			writable: true,
		},
		"storage.key": {
			get: func(c *config.Config) any { return c.Storage.Key },
			set: func(c *config.Config, v string) error {
				if strings.TrimSpace(v) == "" {
					return clierr.New(clierr.InvalidInput, "storage.key must not be empty")
				}
				c.Storage.Key = v
				return nil
			},
			writable: true,
		},
		"log.level": {
			get: func(c *config.Config) any { return c.Log.Level },
			set: func(c *config.Config, v string) error {
				return oneOf("log.level", v, logging.Levels, func() { c.Log.Level = v })
			},
			writable: true,
		},
		"log.format": {
			get: func(c *config.Config) any { return c.Log.Format },
			set: func(c *config.Config, v string) error {
				return oneOf("log.format", v, logging.Formats, func() { c.Log.Format = v })
			},
			writable: true,
		},
	}
}

func addPlannerConfigAccessors(accessors map[string]configAccessor) {
	accessors["grid.zoom_levels"] = configAccessor{
		get: func(c *config.Config) any { return c.Grid.ZoomLevels },
	}
	accessors["grid.default_zoom"] = configAccessor{
		get: func(c *config.Config) any { return c.Grid.DefaultZoom },
		set: func(c *config.Config, v string) error {
			if _, err := grid.FindLevel(c.Grid.ZoomLevels, v); err != nil {
				return err
			}
			c.Grid.DefaultZoom = v
			return nil
		},
		writable: true,
	}
	accessors["grid.center"] = configAccessor{
		get: func(c *config.Config) any { return c.Grid.Center },
		set: func(c *config.Config, v string) error {
			t, err := clock.Parse(v)
			if err != nil {
				return err
			}
			c.Grid.Center = t.String()
			return nil
		},
		writable: true,
	}
	accessors["defaults.schedule_time"] = configAccessor{
		get: func(c *config.Config) any { return c.Defaults.ScheduleTime },
		set: func(c *config.Config, v string) error {
			t, err := clock.Parse(v)
			if err != nil {
				return err
			}
			c.Defaults.ScheduleTime = t.String()
			return nil
		},
		writable: true,
	}
	accessors["defaults.move_policy"] = configAccessor{
		get: func(c *config.Config) any { return c.Defaults.MovePolicy },
		set: func(c *config.Config, v string) error {
			p, err := store.ParseMovePolicy(v)
			if err != nil {
				return err
			}
			c.Defaults.MovePolicy = string(p)
			return nil
		},
		writable: true,
	}
	accessors["defaults.view"] = configAccessor{
		get: func(c *config.Config) any { return c.Defaults.View },
		set: func(c *config.Config, v string) error {
			g, err := calendar.ParseGranularity(v)
			if err != nil {
				return err
			}
			c.Defaults.View = string(g)
			return nil
		},
		writable: true,
	}
	accessors["calendar.week_start"] = configAccessor{
		get: func(c *config.Config) any { return c.Calendar.WeekStart },
		set: func(c *config.Config, v string) error {
			d, err := calendar.ParseWeekday(v)
			if err != nil {
				return err
			}
			c.Calendar.WeekStart = strings.ToLower(d.String())
			return nil
		},
		writable: true,
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"storage.driver",
		"storage.path",
		"storage.key",
		"grid.zoom_levels",
		"grid.default_zoom",
		"grid.center",
		"defaults.schedule_time",
		"defaults.move_policy",
		"defaults.view",
		"calendar.week_start",
		"log.level",
		"log.format",
	}
}

func oneOf(key, v string, allowed []string, apply func()) error {
	for _, a := range allowed {
		if a == v {
			apply()
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidInput, "invalid %s %q; allowed: %s", key, v, strings.Join(allowed, ", "))
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-24s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidInput, err, "rejected "+key)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []grid.Level:
		parts := make([]string, len(v))
		for i, l := range v {
			parts[i] = fmt.Sprintf("%s(%dm/%dm)", l.Name, l.WidthMinutes, l.IntervalMinutes)
		}
		return strings.Join(parts, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
