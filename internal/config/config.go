package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ModeTransaction = "tx"
	ModeScript      = "script"
)

// Config holds every setting of a cosmegraph run. Values come from flags,
// COSMEGRAPH_* environment variables and defaults, in that order.
type Config struct {
	LogMode  string
	LogLevel string

	CSVPath      string
	MasterDBPath string
	Mode         string
	ScriptPath   string
	BatchSize    int
	RunLogDSN    string

	HighUntil   int
	MediumUntil int

	// Neo4j Graph DB
	Neo4jURI       string
	Neo4jUser      string
	Neo4jPassword  string
	Neo4jDatabase  string
	ConnectTimeout time.Duration

	PushgatewayURL string
	MetricsJob     string
	PushTimeout    time.Duration
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("COSMEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("csv", "")
	v.SetDefault("master_db", "")
	v.SetDefault("mode", ModeTransaction)
	v.SetDefault("out", "")
	v.SetDefault("batch_size", 1000)
	v.SetDefault("run_log", "cosmegraph_runs.db")
	v.SetDefault("tier.high_until", 3)
	v.SetDefault("tier.medium_until", 6)
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "")
	v.SetDefault("neo4j.connect_timeout", 10*time.Second)
	v.SetDefault("pushgateway.url", "")
	v.SetDefault("pushgateway.job", "cosmegraph_ingest")
	v.SetDefault("pushgateway.timeout", 10*time.Second)
	return v
}

// FromViper reads a Config out of v without validating it.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		LogMode:        v.GetString("log.mode"),
		LogLevel:       v.GetString("log.level"),
		CSVPath:        v.GetString("csv"),
		MasterDBPath:   v.GetString("master_db"),
		Mode:           strings.ToLower(v.GetString("mode")),
		ScriptPath:     v.GetString("out"),
		BatchSize:      v.GetInt("batch_size"),
		RunLogDSN:      v.GetString("run_log"),
		HighUntil:      v.GetInt("tier.high_until"),
		MediumUntil:    v.GetInt("tier.medium_until"),
		Neo4jURI:       v.GetString("neo4j.uri"),
		Neo4jUser:      v.GetString("neo4j.user"),
		Neo4jPassword:  v.GetString("neo4j.password"),
		Neo4jDatabase:  v.GetString("neo4j.database"),
		ConnectTimeout: v.GetDuration("neo4j.connect_timeout"),
		PushgatewayURL: v.GetString("pushgateway.url"),
		MetricsJob:     v.GetString("pushgateway.job"),
		PushTimeout:    v.GetDuration("pushgateway.timeout"),
	}
}

// ValidateIngest checks the settings the ingest command needs.
func (c *Config) ValidateIngest() error {
	if c.CSVPath == "" {
		return fmt.Errorf("csv path is required (--csv or COSMEGRAPH_CSV)")
	}
	if err := c.validateCommon(); err != nil {
		return err
	}
	switch c.Mode {
	case ModeTransaction:
		if c.Neo4jURI == "" {
			return errNeo4jURI
		}
	case ModeScript:
		if c.ScriptPath == "" {
			return fmt.Errorf("script mode requires an output file (--out or COSMEGRAPH_OUT)")
		}
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeTransaction, ModeScript, c.Mode)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1")
	}
	if c.HighUntil < 1 || c.MediumUntil <= c.HighUntil {
		return fmt.Errorf("tier thresholds must satisfy 1 <= high_until < medium_until, got %d/%d", c.HighUntil, c.MediumUntil)
	}
	return nil
}

// ValidateCatalog checks the settings the migrate-core command needs.
func (c *Config) ValidateCatalog() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.Neo4jURI == "" {
		return errNeo4jURI
	}
	return nil
}

var errNeo4jURI = errors.New("COSMEGRAPH_NEO4J_URI is required")

func (c *Config) validateCommon() error {
	if c.MasterDBPath == "" {
		return fmt.Errorf("master database path is required (--master-db or COSMEGRAPH_MASTER_DB)")
	}
	return nil
}
