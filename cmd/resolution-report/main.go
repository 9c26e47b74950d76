/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	"github.com/chazu/resultgraph/pkg/resolution"
	"github.com/chazu/resultgraph/pkg/trace"
)

var setupLog = log.Log.WithName("setup")

// Output formats
const (
	OutputYAML  = "yaml"
	OutputOrder = "order"
)

// Config holds the command-line configuration
type Config struct {
	TracePath        string
	Output           string
	StrictDuplicates bool
	SkipValidation   bool
}

// parseFlags parses command-line flags and returns configuration
func parseFlags(fs *flag.FlagSet, args []string) (Config, logr.Logger, error) {
	cfg := Config{}
	fs.StringVar(&cfg.TracePath, "trace", "", "Path to the recorded visitation trace (YAML or JSON).")
	fs.StringVar(&cfg.Output, "output", OutputYAML, "Output format: yaml prints the full report, "+
		"order prints components in dependency order.")
	fs.BoolVar(&cfg.StrictDuplicates, "strict-duplicates", false,
		"Fail when a component is visited twice with different attributes instead of keeping the first visit.")
	fs.BoolVar(&cfg.SkipValidation, "skip-validation", false,
		"Skip the consistency check of the completed result.")

	opts := zap.Options{Development: true}
	opts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, logr.Discard(), err
	}
	logger := zap.New(zap.UseFlagOptions(&opts))

	if cfg.TracePath == "" {
		return cfg, logger, errors.New("--trace is required")
	}
	if cfg.Output != OutputYAML && cfg.Output != OutputOrder {
		return cfg, logger, fmt.Errorf("invalid output format: %s", cfg.Output)
	}
	return cfg, logger, nil
}

// run replays the trace and writes the requested rendering to out
func run(cfg Config, logger logr.Logger, out io.Writer) error {
	t, err := trace.Load(cfg.TracePath)
	if err != nil {
		return err
	}

	builder := resolution.NewBuilder(
		resolution.WithLogger(logger.WithName("builder")),
		resolution.WithStrictDuplicates(cfg.StrictDuplicates),
	)
	result, err := t.Replay(builder)
	if err != nil {
		return fmt.Errorf("failed to replay trace: %w", err)
	}

	if !cfg.SkipValidation {
		if err := result.Validate(); err != nil {
			return fmt.Errorf("result validation failed: %w", err)
		}
	}

	logger.Info("resolution result ready",
		"root", result.Root().ID(),
		"components", len(result.AllComponents()),
		"unresolved", len(result.UnresolvedDependencies()),
		"fingerprint", result.Fingerprint())

	switch cfg.Output {
	case OutputOrder:
		return writeOrder(result, out)
	default:
		return writeReport(result, out)
	}
}

func writeReport(result *resolution.Result, out io.Writer) error {
	data, err := yaml.Marshal(result.Report())
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func writeOrder(result *resolution.Result, out io.Writer) error {
	dag, err := result.DAG()
	if err != nil {
		return err
	}

	order, err := dag.TopologicalOrder()
	if err != nil {
		cycles, cerr := dag.Cycles()
		if cerr != nil {
			return cerr
		}
		for _, cycle := range cycles {
			fmt.Fprintf(out, "cycle: %v\n", cycle)
		}
		return err
	}

	for _, id := range order {
		c, _ := result.Component(id)
		fmt.Fprintf(out, "%d\t%s\n", id, c.ModuleVersion())
	}
	for _, e := range result.UnresolvedDependencies() {
		fmt.Fprintf(out, "unresolved\t%s\n", e)
	}
	return nil
}

func main() {
	cfg, logger, err := parseFlags(flag.CommandLine, os.Args[1:])
	log.SetLogger(logger)
	if err != nil {
		setupLog.Error(err, "invalid arguments")
		os.Exit(2)
	}

	if err := run(cfg, logger, os.Stdout); err != nil {
		setupLog.Error(err, "resolution report failed", "trace", cfg.TracePath)
		os.Exit(1)
	}
}
