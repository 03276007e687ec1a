// Command dwvalidate checks Datawarehouse documents against the XSD.
//
// Usage:
//
//	dwvalidate [--schema path] [--config file] [--quiet] document.xml...
//
// It exits 1 when any document is invalid and 2 on usage or setup errors.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/proligent-labs/proligent-go/datawarehouse"
	"github.com/proligent-labs/proligent-go/xmlvalidate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewJSONHandler(stderr, nil))

	flags := pflag.NewFlagSet("dwvalidate", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	schema := flags.StringP("schema", "s", "", "Datawarehouse XSD (default: PROLIGENT_SCHEMA_PATH or config schema_path)")
	configPath := flags.StringP("config", "c", "", "YAML config file (default: environment)")
	quiet := flags.BoolP("quiet", "q", false, "report invalid documents only")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: dwvalidate [flags] document.xml...")
		flags.PrintDefaults()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("invalid config", "error", err)
		return 2
	}
	schemaPath := strings.TrimSpace(*schema)
	if schemaPath == "" {
		schemaPath = cfg.SchemaPath
	}
	if schemaPath == "" {
		logger.Error("missing schema", "env", "PROLIGENT_SCHEMA_PATH")
		return 2
	}

	validator, err := xmlvalidate.New(schemaPath)
	if err != nil {
		logger.Error("schema unavailable", "schema", schemaPath, "error", err)
		return 2
	}
	defer validator.Close()

	status := 0
	for _, path := range flags.Args() {
		res, err := validator.ValidateFile(path)
		if err != nil {
			logger.Error("validation did not run", "path", path, "error", err)
			status = 1
			continue
		}
		if res.Valid {
			if !*quiet {
				fmt.Fprintf(stdout, "%s: valid\n", path)
			}
			continue
		}
		status = 1
		fmt.Fprintf(stdout, "%s: invalid\n", path)
		for _, d := range res.Diagnostics {
			fmt.Fprintf(stdout, "  %s\n", d)
		}
	}
	return status
}

func loadConfig(path string) (datawarehouse.Config, error) {
	if strings.TrimSpace(path) != "" {
		return datawarehouse.LoadConfigFile(path)
	}
	return datawarehouse.ConfigFromEnv()
}
