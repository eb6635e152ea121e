package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/iota-uz/agent-etl/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"agent_stats"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type Configuration struct {
	Database DatabaseOptions

	// DataDirectory is the base directory holding raw and processed files.
	DataDirectory string `env:"DATA_DIRECTORY" envDefault:"data"`
	// RawFile is the default input path, relative to DataDirectory.
	RawFile string `env:"RAW_FILE" envDefault:"raw/data.csv"`
	// ProcessedDir receives the normalized audit CSVs, relative to
	// DataDirectory. Empty disables the audit trail.
	ProcessedDir string `env:"PROCESSED_DIR" envDefault:"processed"`
	// SourceEncoding is the expected input encoding: utf-8 or windows-1252.
	// With utf-8, undecodable input falls back to windows-1252.
	SourceEncoding string `env:"CSV_ENCODING" envDefault:"utf-8"`

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/etl.log"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// RawFilePath resolves the default input file against DataDirectory.
func (c *Configuration) RawFilePath() string {
	return filepath.Join(c.DataDirectory, c.RawFile)
}

// ProcessedPath resolves the audit-trail directory against DataDirectory.
// Returns "" when the audit trail is disabled.
func (c *Configuration) ProcessedPath() string {
	if c.ProcessedDir == "" {
		return ""
	}
	return filepath.Join(c.DataDirectory, c.ProcessedDir)
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.validateEncoding(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	return nil
}

func (c *Configuration) validateEncoding() error {
	enc := strings.ToLower(strings.TrimSpace(c.SourceEncoding))
	if enc == "" {
		enc = "utf-8"
	}
	switch enc {
	case "utf-8", "utf8":
		enc = "utf-8"
	case "windows-1252", "cp1252", "latin1", "iso-8859-1":
		enc = "windows-1252"
	default:
		return fmt.Errorf("invalid CSV_ENCODING=%q (expected utf-8|windows-1252)", c.SourceEncoding)
	}
	c.SourceEncoding = enc
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}
