package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	envFileFlag    = "--env-file"
	envFileVar     = "LOGOGEN_ENV_FILE"
	defaultEnvFile = ".env"
)

// optsGlobal are accepted by every command
type optsGlobal struct {
	EnvFile string `long:"env-file" env:"LOGOGEN_ENV_FILE" description:"dotenv file loaded before other flags are read" default:".env"`
}

func main() {
	// The env file has to be loaded before go-flags reads env: tags, so we find it ourselves.
	// Values already in the environment win over the file.
	err := godotenv.Load(envFilePath(os.Args[1:], os.Getenv(envFileVar)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var parser = flags.NewParser(&optsGlobal{}, flags.Default)

	parser.AddCommand("trigger", docTrigger, docTriggerLong, &optsTrigger{})
	parser.AddCommand("api", docApi, docApi, &optsAPI{})
	parser.AddCommand("migrate", docMigrate, docMigrate, &optsMigrate{})

	if _, err := parser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case flags.ErrorType:
			if flagsErr == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}

// envFilePath returns the --env-file flag value, else env, else the default.
func envFilePath(args []string, env string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if a == envFileFlag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, envFileFlag+"="); ok {
			return v
		}
	}
	if env != "" {
		return env
	}
	return defaultEnvFile
}
