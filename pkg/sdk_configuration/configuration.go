package sdk_configuration

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// ServerConfig is filled from command-line flags, the environment and an optional .env file,
// in that order of precedence.
type ServerConfig struct {
	ServerPort        string        `name:"port"                default:"8080"                      env:"PORT"                help:"HTTP listen port."`
	DocumentDBUri     string        `name:"document-db-uri"     default:"mongodb://localhost:27017" env:"DOCUMENT_DB_URI"     help:"MongoDB connection URI."`
	DocumentDBName    string        `name:"document-db-name"    default:"test"                      env:"DOCUMENT_DB_NAME"    help:"MongoDB database holding the collections."`
	ConnectionTimeout time.Duration `name:"document-db-timeout" default:"10s"                       env:"DOCUMENT_DB_TIMEOUT" help:"Timeout for the initial MongoDB ping."`
	ShutdownTimeout   time.Duration `name:"shutdown-timeout"    default:"10s"                       env:"SHUTDOWN_TIMEOUT"    help:"Grace period for in-flight requests on shutdown."`
	SeedOnStartup     bool          `name:"seed-on-startup"     default:"true"                      env:"SEED_ON_STARTUP"     help:"Insert one sample record per collection at startup." negatable:""`
	LogType           string        `name:"log-type"            default:"JSON"                      env:"LOG_TYPE"            help:"Log format: JSON or STRING." enum:"JSON,STRING"`
	LogLevel          string        `name:"log-level"           default:"info"                      env:"LOG_LEVEL"           help:"Log level: debug, info, warn, error." enum:"debug,info,warn,error"`

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool `kong:"-"`
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return ":" + c.ServerPort
}

// LoadConfiguration reads envFile (missing files are ignored) and parses args.
func LoadConfiguration(args []string, envFile string) (*ServerConfig, error) {
	config := &ServerConfig{}
	if envFile != "" {
		config.EnvFileLoaded = godotenv.Load(envFile) == nil
	}

	parser, err := kong.New(config,
		kong.Name("endor-records"),
		kong.Description("CRUD API over users, blogs and hotel ratings."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build configuration parser: %w", err)
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return config, nil
}
