// Command dwsample writes a small Datawarehouse document, either to the path
// given with --output or to the configured destination directory.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/proligent-labs/proligent-go/datawarehouse"
	"github.com/proligent-labs/proligent-go/xmlvalidate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewJSONHandler(stderr, nil))

	flags := pflag.NewFlagSet("dwsample", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	output := flags.StringP("output", "o", "", "document path (default: generated name in the destination dir)")
	configPath := flags.StringP("config", "c", "", "YAML config file (default: environment)")
	style := flags.String("style", "incremental", "authoring style: eager or incremental")
	validate := flags.Bool("validate", false, "validate the written document against the configured schema")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("invalid config", "error", err)
		return 2
	}
	if err := datawarehouse.SetDefaultConfig(cfg); err != nil {
		logger.Error("invalid config", "error", err)
		return 2
	}

	var w *datawarehouse.Warehouse
	now := time.Now()
	switch *style {
	case "eager":
		w, err = buildEager(now, datawarehouse.WithLogger(logger))
	case "incremental":
		w, err = buildIncremental(now, datawarehouse.WithLogger(logger))
	default:
		logger.Error("unsupported style", "style", *style)
		return 2
	}
	if err != nil {
		logger.Error("build failed", "error", err)
		return 1
	}

	path, err := w.Save(*output)
	if err != nil {
		logger.Error("save failed", "error", err)
		return 1
	}
	fmt.Fprintln(stdout, path)

	if !*validate {
		return 0
	}
	if cfg.SchemaPath == "" {
		logger.Error("missing schema", "env", "PROLIGENT_SCHEMA_PATH")
		return 2
	}
	res, err := xmlvalidate.ValidateFile(path, cfg.SchemaPath)
	if err != nil {
		logger.Error("validation did not run", "path", path, "error", err)
		return 1
	}
	if !res.Valid {
		logger.Error("document invalid", "path", path, "error", res.Err())
		return 1
	}
	logger.Info("document valid", "path", path, "schema", cfg.SchemaPath)
	return 0
}

func loadConfig(path string) (datawarehouse.Config, error) {
	if strings.TrimSpace(path) != "" {
		return datawarehouse.LoadConfigFile(path)
	}
	return datawarehouse.ConfigFromEnv()
}
