package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alejandrodnm/draftsim/internal/application/runner"
	"github.com/alejandrodnm/draftsim/internal/domain"
	"github.com/alejandrodnm/draftsim/internal/domain/policy"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ErrInvalid agrupa los errores de validación de configuración.
var ErrInvalid = errors.New("invalid config")

// Config es la configuración completa del simulador.
type Config struct {
	League     LeagueConfig     `yaml:"league"`
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// LeagueConfig describe las reglas de la liga.
type LeagueConfig struct {
	Slots              map[string]int `yaml:"slots"`      // QB, RB, WR, TE, FLEX, BENCH
	TeamCaps           map[string]int `yaml:"team_caps"`  // límites holgados (baseline)
	SmartCaps          map[string]int `yaml:"smart_caps"` // límites ajustados (resto de políticas)
	Scoring            string         `yaml:"scoring"`
	RegularSeasonWeeks int            `yaml:"regular_season_weeks"`
	LeagueSize         int            `yaml:"league_size"` // 0 = suma de teams[].count
}

// SimulationConfig controla el loop exterior.
type SimulationConfig struct {
	StartYear int        `yaml:"start_year"`
	EndYear   int        `yaml:"end_year"`
	Repeats   int        `yaml:"repeats"`
	Workers   int        `yaml:"workers"` // trials en paralelo (0 = NumCPU)
	Teams     []TeamSpec `yaml:"teams"`
}

// TeamSpec pide Count equipos con la política Policy.
type TeamSpec struct {
	Policy string `yaml:"policy"`
	Count  int    `yaml:"count"`
}

// StorageConfig controla dónde se leen las temporadas y se guardan los resultados.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// envOverrides son las variables de entorno que pisan al YAML.
type envOverrides struct {
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`
	DSN       string `envconfig:"DRAFTSIM_DSN"`
	Workers   *int   `envconfig:"DRAFTSIM_WORKERS"`
	Repeats   *int   `envconfig:"DRAFTSIM_REPEATS"`
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse interpreta YAML ya leído, aplica entorno y defaults, y valida.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("config.Load: environment: %w", err)
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.DSN != "" {
		cfg.Storage.DSN = env.DSN
	}
	if env.Workers != nil {
		cfg.Simulation.Workers = *env.Workers
	}
	if env.Repeats != nil {
		cfg.Simulation.Repeats = *env.Repeats
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if len(cfg.League.Slots) == 0 {
		cfg.League.Slots = slotsToMap(domain.DefaultSlotCaps())
	}
	if len(cfg.League.TeamCaps) == 0 {
		cfg.League.TeamCaps = capsToMap(domain.TeamCaps())
	}
	if len(cfg.League.SmartCaps) == 0 {
		cfg.League.SmartCaps = capsToMap(domain.SmartCaps())
	}
	if cfg.League.Scoring == "" {
		cfg.League.Scoring = string(domain.ScoringStandard)
	}
	if cfg.League.RegularSeasonWeeks <= 0 {
		cfg.League.RegularSeasonWeeks = 14
	}
	if cfg.Simulation.StartYear == 0 {
		cfg.Simulation.StartYear = 2010
	}
	if cfg.Simulation.EndYear == 0 {
		cfg.Simulation.EndYear = cfg.Simulation.StartYear
	}
	if cfg.Simulation.Repeats <= 0 {
		cfg.Simulation.Repeats = 1
	}
	if len(cfg.Simulation.Teams) == 0 {
		cfg.Simulation.Teams = []TeamSpec{{Policy: string(policy.KindBaseline), Count: 10}}
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "draftsim.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate comprueba la consistencia de la configuración antes de cualquier draft.
func (c *Config) Validate() error {
	if _, err := c.SlotCaps(); err != nil {
		return err
	}
	if _, err := parseCaps("team_caps", c.League.TeamCaps); err != nil {
		return err
	}
	if _, err := parseCaps("smart_caps", c.League.SmartCaps); err != nil {
		return err
	}
	if _, err := domain.ParseScoring(c.League.Scoring); err != nil {
		return fmt.Errorf("config: league.scoring: %w", err)
	}
	if c.Simulation.StartYear > c.Simulation.EndYear {
		return fmt.Errorf("config: start_year %d after end_year %d: %w",
			c.Simulation.StartYear, c.Simulation.EndYear, ErrInvalid)
	}

	specs, err := c.Teams()
	if err != nil {
		return err
	}
	total := 0
	for _, s := range specs {
		total += s.Count
	}
	if total < domain.PlayoffTeams {
		return fmt.Errorf("config: %d teams, need at least %d: %w", total, domain.PlayoffTeams, ErrInvalid)
	}
	if c.League.LeagueSize != 0 && c.League.LeagueSize != total {
		return fmt.Errorf("config: league_size %d but teams add up to %d: %w",
			c.League.LeagueSize, total, ErrInvalid)
	}
	return nil
}

// SlotCaps devuelve la configuración de lineup tipada.
func (c *Config) SlotCaps() (domain.SlotCaps, error) {
	caps := make(domain.SlotCaps, len(c.League.Slots))
	for k, v := range c.League.Slots {
		caps[domain.Slot(k)] = v
	}
	if err := caps.Validate(); err != nil {
		return nil, fmt.Errorf("config: league.slots: %v: %w", err, ErrInvalid)
	}
	for _, s := range domain.Slots {
		if _, ok := caps[s]; !ok {
			return nil, fmt.Errorf("config: league.slots: missing %s: %w", s, ErrInvalid)
		}
	}
	return caps, nil
}

// PositionCaps devuelve los presets de límites por posición (team, smart).
func (c *Config) PositionCaps() (team, smart domain.PositionCaps, err error) {
	if team, err = parseCaps("team_caps", c.League.TeamCaps); err != nil {
		return nil, nil, err
	}
	if smart, err = parseCaps("smart_caps", c.League.SmartCaps); err != nil {
		return nil, nil, err
	}
	return team, smart, nil
}

// ResolvedTeam es un TeamSpec con la política ya validada.
type ResolvedTeam struct {
	Kind  policy.Kind
	Count int
}

// Teams resuelve los nombres de política. Un nombre desconocido es un error fatal.
func (c *Config) Teams() ([]ResolvedTeam, error) {
	out := make([]ResolvedTeam, 0, len(c.Simulation.Teams))
	seen := make(map[policy.Kind]bool)
	for i, t := range c.Simulation.Teams {
		kind, err := policy.ParseKind(t.Policy)
		if err != nil {
			return nil, fmt.Errorf("config: simulation.teams[%d]: %w", i, err)
		}
		if t.Count <= 0 {
			return nil, fmt.Errorf("config: simulation.teams[%d]: count must be positive: %w", i, ErrInvalid)
		}
		if seen[kind] {
			return nil, fmt.Errorf("config: simulation.teams[%d]: policy %s listed twice: %w", i, kind, ErrInvalid)
		}
		seen[kind] = true
		out = append(out, ResolvedTeam{Kind: kind, Count: t.Count})
	}
	return out, nil
}

// RunnerConfig convierte la configuración validada al formato del runner.
func (c *Config) RunnerConfig() (runner.Config, error) {
	slots, err := c.SlotCaps()
	if err != nil {
		return runner.Config{}, err
	}
	team, smart, err := c.PositionCaps()
	if err != nil {
		return runner.Config{}, err
	}
	scoring, err := domain.ParseScoring(c.League.Scoring)
	if err != nil {
		return runner.Config{}, fmt.Errorf("config: league.scoring: %w", err)
	}
	resolved, err := c.Teams()
	if err != nil {
		return runner.Config{}, err
	}
	specs := make([]runner.TeamSpec, 0, len(resolved))
	for _, t := range resolved {
		specs = append(specs, runner.TeamSpec{Kind: t.Kind, Count: t.Count})
	}
	return runner.Config{
		Slots:        slots,
		TeamCaps:     team,
		SmartCaps:    smart,
		Scoring:      scoring,
		RegularWeeks: c.League.RegularSeasonWeeks,
		StartYear:    c.Simulation.StartYear,
		EndYear:      c.Simulation.EndYear,
		Repeats:      c.Simulation.Repeats,
		Teams:        specs,
		Workers:      c.Simulation.Workers,
	}, nil
}

func parseCaps(field string, m map[string]int) (domain.PositionCaps, error) {
	caps := make(domain.PositionCaps, len(domain.Positions))
	for k, v := range m {
		pos, err := domain.ParsePosition(k)
		if err != nil {
			return nil, fmt.Errorf("config: league.%s: %v: %w", field, err, ErrInvalid)
		}
		if v < 0 {
			return nil, fmt.Errorf("config: league.%s: negative cap for %s: %w", field, pos, ErrInvalid)
		}
		caps[pos] = v
	}
	for _, p := range domain.Positions {
		if _, ok := caps[p]; !ok {
			return nil, fmt.Errorf("config: league.%s: missing %s: %w", field, p, ErrInvalid)
		}
	}
	return caps, nil
}

func slotsToMap(caps domain.SlotCaps) map[string]int {
	out := make(map[string]int, len(caps))
	for k, v := range caps {
		out[string(k)] = v
	}
	return out
}

func capsToMap(caps domain.PositionCaps) map[string]int {
	out := make(map[string]int, len(caps))
	for k, v := range caps {
		out[string(k)] = v
	}
	return out
}
