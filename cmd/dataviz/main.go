package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wdm0006/dataviz/pkg/analyze"
	"github.com/wdm0006/dataviz/pkg/viz"
)

var (
	version = "0.1.0-dev"

	// set by the yaml/toml build-tagged variants
	yamlUnmarshal func([]byte, any) error
	tomlUnmarshal func([]byte, any) error
)

type Config struct {
	Input struct {
		Path string `json:"path" yaml:"path" toml:"path"`
		Type string `json:"type" yaml:"type" toml:"type"` // csv|tsv|parquet (default csv)
	} `json:"input" yaml:"input" toml:"input"`
	Output struct {
		Dir string `json:"dir" yaml:"dir" toml:"dir"`
	} `json:"output" yaml:"output" toml:"output"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if yamlUnmarshal == nil {
			return cfg, fmt.Errorf("yaml config support requires building with -tags yaml")
		}
		err = yamlUnmarshal(b, &cfg)
	case ".toml":
		if tomlUnmarshal == nil {
			return cfg, fmt.Errorf("toml config support requires building with -tags toml")
		}
		err = tomlUnmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	return cfg, err
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to config file (JSON; YAML/TOML with build tags)")
	input := flag.String("input", "", "Path to the dataset file")
	fileType := flag.String("type", "", "Dataset file type: csv|tsv|parquet (default csv)")
	outDir := flag.String("out", "", "Directory to write visualization images (default .)")
	summary := flag.Bool("summary", false, "Print a per-column missing-value summary")
	flag.Parse()

	if *showVersion {
		fmt.Println("dataviz", version)
		return
	}

	var cfg Config
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = c
	}
	// flags override config
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *fileType != "" {
		cfg.Input.Type = *fileType
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "no input provided; try -input <file> or -config <file>")
		os.Exit(2)
	}
	if cfg.Input.Type == "" {
		cfg.Input.Type = "csv"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	ft := viz.FileType(cfg.Input.Type)
	ctx := context.Background()

	var res viz.Result
	if *summary {
		// reuse the loaded frame for both the report and the charts
		f, err := viz.LoadFrame(cfg.Input.Path, ft)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(analyze.MissingValues(f).ReportText())
		res, err = viz.GenerateFrom(ctx, f, cfg.Output.Dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		r, err := viz.Generate(ctx, cfg.Input.Path, ft, cfg.Output.Dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		res = r
	}

	names := make([]string, 0, len(res))
	for name := range res {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys := make([]string, 0, len(res[name]))
		for k := range res[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, res[name][k])
		}
	}
}
