package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Discord DiscordConfig `mapstructure:"discord"`
	Sheets  SheetsConfig  `mapstructure:"sheets"`
	Ops     OpsConfig     `mapstructure:"ops"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Roles is loaded from the separate roles file; see LoadRoles.
	Roles RolesConfig `mapstructure:"-"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Discord.Token == "" {
		return errors.New("discord token is required (SCHS_ROBOTICS_ROLES_BOT_TOKEN)")
	}
	if c.Sheets.SpreadsheetID == "" {
		return errors.New("sheets.spreadsheet_id is required")
	}
	if c.Sheets.ReadRange == "" {
		return errors.New("sheets.read_range is required")
	}
	return c.Roles.Validate()
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options for the health surface.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DiscordConfig contains bot session parameters.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// SheetsConfig describes the membership spreadsheet source.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	ReadRange       string `mapstructure:"read_range"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// OpsConfig bounds command execution.
type OpsConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RolesFile      string        `mapstructure:"roles_file"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// TeamRoles names the role pair belonging to one team.
type TeamRoles struct {
	Key        string `mapstructure:"key"`
	Role       string `mapstructure:"role"`
	AlumniRole string `mapstructure:"alumni_role"`
}

// RolesConfig is the static role classification. Category assignment lives
// here, never derived from platform data; declaration order fixes backup
// column order.
type RolesConfig struct {
	ActiveRole string      `mapstructure:"active_role"`
	AlumniRole string      `mapstructure:"alumni_role"`
	Teams      []TeamRoles `mapstructure:"teams"`
}

// Validate checks the role classification for completeness.
func (r RolesConfig) Validate() error {
	if r.ActiveRole == "" {
		return errors.New("roles: active_role is required")
	}
	if r.AlumniRole == "" {
		return errors.New("roles: alumni_role is required")
	}
	if len(r.Teams) == 0 {
		return errors.New("roles: at least one team is required")
	}
	seen := make(map[string]bool, len(r.Teams))
	for _, t := range r.Teams {
		if t.Key == "" || t.Role == "" || t.AlumniRole == "" {
			return fmt.Errorf("roles: team %q needs key, role and alumni_role", t.Key)
		}
		if seen[t.Key] {
			return fmt.Errorf("roles: duplicate team key %q", t.Key)
		}
		seen[t.Key] = true
	}
	return nil
}

// Declarations returns the configured roles in declaration order with
// platform ids unresolved. Team pairs come first, then the two singletons.
func (r RolesConfig) Declarations() []entities.Role {
	roles := make([]entities.Role, 0, 2*len(r.Teams)+2)
	for _, t := range r.Teams {
		roles = append(roles, entities.Role{Name: t.Role, Category: entities.TeamRole(t.Key)})
	}
	for _, t := range r.Teams {
		roles = append(roles, entities.Role{Name: t.AlumniRole, Category: entities.TeamAlumniRole(t.Key)})
	}
	roles = append(roles,
		entities.Role{Name: r.ActiveRole, Category: entities.RoleCategory{Kind: entities.KindActive}},
		entities.Role{Name: r.AlumniRole, Category: entities.RoleCategory{Kind: entities.KindAlumni}},
	)
	return roles
}
