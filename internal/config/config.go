// Package config loads the application configuration, including the
// user directory. Users are a trusted pick-list, not a security
// boundary; the role decides which dashboard the UI shows and lives
// here, never on a task.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Role string

const (
	RoleElderly   Role = "elderly"
	RoleCaregiver Role = "caregiver"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleElderly, RoleCaregiver:
		return true
	default:
		return false
	}
}

type UserProfile struct {
	Name string `yaml:"name"`
	Role Role   `yaml:"role"`
}

type Config struct {
	Users          []UserProfile `yaml:"users"`
	PollSeconds    int           `yaml:"poll_seconds"`
	SnoozeMinutes  int           `yaml:"snooze_minutes"`
	ReminderPolicy string        `yaml:"reminder_policy"`
	TasksFile      string        `yaml:"tasks_file"`
	WellnessFile   string        `yaml:"wellness_file"`

	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// Default returns the built-in configuration: a sample household of
// three, a 5 second poll, the 5 minute snooze, and the jitter-safe
// matching policy.
func Default() Config {
	return Config{
		Users: []UserProfile{
			{Name: "Grace", Role: RoleElderly},
			{Name: "Samuel", Role: RoleCaregiver},
			{Name: "Linda", Role: RoleElderly},
		},
		PollSeconds:    5,
		SnoozeMinutes:  5,
		ReminderPolicy: "at_or_past_due",
		TasksFile:      "tasks.csv",
		WellnessFile:   "wellness.csv",
	}
}

// Load reads the YAML config at path over the defaults. A missing file
// is not an error: the defaults apply as-is. Out-of-range knobs fall
// back to their defaults rather than failing startup.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.PollSeconds <= 0 {
		c.PollSeconds = def.PollSeconds
	}
	if c.SnoozeMinutes <= 0 {
		c.SnoozeMinutes = def.SnoozeMinutes
	}
	if strings.TrimSpace(c.TasksFile) == "" {
		c.TasksFile = def.TasksFile
	}
	if strings.TrimSpace(c.WellnessFile) == "" {
		c.WellnessFile = def.WellnessFile
	}
	if len(c.Users) == 0 {
		c.Users = def.Users
	}
	users := c.Users[:0]
	for _, u := range c.Users {
		u.Name = strings.TrimSpace(u.Name)
		if u.Name == "" {
			continue
		}
		if !u.Role.IsValid() {
			u.Role = RoleElderly
		}
		users = append(users, u)
	}
	c.Users = users
}

func (c Config) TasksPath() string    { return filepath.Join(c.DataDir, c.TasksFile) }
func (c Config) WellnessPath() string { return filepath.Join(c.DataDir, c.WellnessFile) }

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

func (c Config) SnoozeDelta() time.Duration {
	return time.Duration(c.SnoozeMinutes) * time.Minute
}

// FindUser looks a profile up by name.
func (c Config) FindUser(name string) (UserProfile, bool) {
	for _, u := range c.Users {
		if u.Name == name {
			return u, true
		}
	}
	return UserProfile{}, false
}

// ElderlyNames lists the users a caregiver dashboard watches.
func (c Config) ElderlyNames() []string {
	out := make([]string, 0, len(c.Users))
	for _, u := range c.Users {
		if u.Role == RoleElderly {
			out = append(out, u.Name)
		}
	}
	return out
}
