package config

import (
	"flag"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment keys read by LoadServer
const (
	EnvAddr      = "GRIDSNAKE_ADDR"
	EnvDBPath    = "GRIDSNAKE_DB"
	EnvRecordDir = "GRIDSNAKE_RECORD_DIR"
	EnvRecord    = "GRIDSNAKE_RECORD"
	EnvLogLevel  = "GRIDSNAKE_LOG_LEVEL"
)

// Server holds settings for the web server binary
type Server struct {
	Addr      string
	DBPath    string
	RecordDir string
	Record    bool
	LogLevel  log.Level
}

// LoadServer resolves settings in order of increasing priority: built-in
// defaults, the given .env files (".env" when none are given, silently
// skipped when missing), GRIDSNAKE_* environment variables, then flags.
func LoadServer(args []string, envFiles ...string) (Server, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, errors.Wrapf(err, "load %s", f)
		}
	}

	record, err := envBool(EnvRecord, false)
	if err != nil {
		return Server{}, err
	}

	fset := flag.NewFlagSet("webserver", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	addr := fset.String("addr", envString(EnvAddr, DefaultAddr), "listen address")
	dbPath := fset.String("db", envString(EnvDBPath, DefaultDBPath), "sqlite database path")
	recordDir := fset.String("record-dir", envString(EnvRecordDir, DefaultRecordDir), "directory for run recordings")
	recordFlag := fset.Bool("record", record, "record every run as JSONL")
	level := fset.String("log-level", envString(EnvLogLevel, DefaultLogLevel), "debug|info|warn|error")
	if err := fset.Parse(args); err != nil {
		return Server{}, errors.Wrap(err, "parse flags")
	}

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return Server{}, errors.Wrapf(err, "log level %q", *level)
	}

	return Server{
		Addr:      *addr,
		DBPath:    *dbPath,
		RecordDir: *recordDir,
		Record:    *recordFlag,
		LogLevel:  lvl,
	}, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "%s", key)
	}
	return b, nil
}
