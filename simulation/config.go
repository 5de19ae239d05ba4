package simulation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Backing store kinds.
const (
	BackingMemory = "memory"
	BackingSQLite = "sqlite"
)

// Environment variables read by LoadConfig.
const (
	EnvOffsetWidth       = "VMSIM_OFFSET_WIDTH"
	EnvTablesDepth       = "VMSIM_TABLES_DEPTH"
	EnvNumFrames         = "VMSIM_NUM_FRAMES"
	EnvVirtualMemorySize = "VMSIM_VIRTUAL_MEMORY_SIZE"
	EnvBacking           = "VMSIM_BACKING"
	EnvBackingPath       = "VMSIM_BACKING_PATH"
	EnvRecord            = "VMSIM_RECORD"
	EnvMonitorPort       = "VMSIM_MONITOR_PORT"
	EnvLogLevel          = "VMSIM_LOG_LEVEL"
)

// Config is the configuration of a simulation.
type Config struct {
	VM          vm.Config
	Backing     string
	BackingPath string
	RecordPath  string
	MonitorPort int
	LogLevel    slog.Level
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		VM: vm.Config{
			OffsetWidth:       4,
			TablesDepth:       4,
			NumFrames:         64,
			VirtualMemorySize: 1 << 20,
		},
		Backing:  BackingMemory,
		LogLevel: slog.LevelInfo,
	}
}

// LoadConfig builds a configuration from the defaults, the given .env files,
// and the process environment, in increasing priority. Without any file,
// ./.env is read if it exists.
func LoadConfig(envFiles ...string) (Config, error) {
	fileValues, err := readEnvFiles(envFiles)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := fileValues[key]

		return v, ok
	}

	c := DefaultConfig()

	err = c.apply(lookup)
	if err != nil {
		return Config{}, err
	}

	return c, c.Validate()
}

func readEnvFiles(envFiles []string) (map[string]string, error) {
	if len(envFiles) == 0 {
		values, err := godotenv.Read()
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return values, err
	}

	values, err := godotenv.Read(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("read env files %v: %w", envFiles, err)
	}

	return values, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	uintFields := []struct {
		key string
		dst *uint64
	}{
		{EnvOffsetWidth, &c.VM.OffsetWidth},
		{EnvTablesDepth, &c.VM.TablesDepth},
		{EnvNumFrames, &c.VM.NumFrames},
		{EnvVirtualMemorySize, &c.VM.VirtualMemorySize},
	}

	for _, f := range uintFields {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}

		n, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", f.key, err)
		}

		*f.dst = n
	}

	if v, ok := lookup(EnvBacking); ok && v != "" {
		c.Backing = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvBackingPath); ok {
		c.BackingPath = v
	}

	if v, ok := lookup(EnvRecord); ok {
		c.RecordPath = v
	}

	if v, ok := lookup(EnvMonitorPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMonitorPort, err)
		}

		c.MonitorPort = port
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return err
		}

		c.LogLevel = level
	}

	return nil
}

// Validate checks the memory geometry and the backing store kind.
func (c Config) Validate() error {
	err := c.VM.Validate()
	if err != nil {
		return err
	}

	switch c.Backing {
	case BackingMemory, BackingSQLite:
	default:
		return fmt.Errorf("unknown backing store %q", c.Backing)
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("invalid monitor port %d", c.MonitorPort)
	}

	return nil
}

// ParseLogLevel converts debug, info, warn, or error into a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}

	return level, nil
}

// String lists the configuration in the .env format.
func (c Config) String() string {
	values := map[string]string{
		EnvOffsetWidth:       strconv.FormatUint(c.VM.OffsetWidth, 10),
		EnvTablesDepth:       strconv.FormatUint(c.VM.TablesDepth, 10),
		EnvNumFrames:         strconv.FormatUint(c.VM.NumFrames, 10),
		EnvVirtualMemorySize: strconv.FormatUint(c.VM.VirtualMemorySize, 10),
		EnvBacking:           c.Backing,
		EnvBackingPath:       c.BackingPath,
		EnvRecord:            c.RecordPath,
		EnvMonitorPort:       strconv.Itoa(c.MonitorPort),
		EnvLogLevel:          strings.ToLower(c.LogLevel.String()),
	}

	s, err := godotenv.Marshal(values)
	if err != nil {
		panic(err)
	}

	return s
}
