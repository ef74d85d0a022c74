package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/npmreq/internal/dep"
	"github.com/frederic-klein/npmreq/internal/emit"
	"github.com/frederic-klein/npmreq/internal/manifest"
	"github.com/frederic-klein/npmreq/internal/rpm"
)

var (
	withDev      bool
	withOptional bool
	noEngines    bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "npmreq",
		Short: "RPM dependency generator for npm package manifests",
		Long:  "npmreq converts the semver version ranges declared in package.json files into RPM boolean dependency expressions.",
	}

	reqCmd := &cobra.Command{
		Use:   "req [manifest...]",
		Short: "Generate RPM Requires from package manifests",
		Long:  "Reads manifest paths from the arguments, or one per line from stdin when no arguments are given, and prints the generated dependencies sorted on stdout.",
		RunE:  runReq,
	}

	reqCmd.Flags().BoolVar(&withDev, "dev", false, "Include devDependencies")
	reqCmd.Flags().BoolVar(&withOptional, "optional", false, "Include optionalDependencies")
	reqCmd.Flags().BoolVar(&noEngines, "no-engines", false, "Skip the engines.node constraint")
	reqCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(reqCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: false,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func runReq(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	paths := args
	if len(paths) == 0 {
		stdin, err := readPaths(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading manifest paths: %w", err)
		}
		paths = stdin
	}

	kinds := []dep.Kind{dep.KindRuntime}
	if withDev {
		kinds = append(kinds, dep.KindDev)
	}
	if withOptional {
		kinds = append(kinds, dep.KindOptional)
	}
	if !noEngines {
		kinds = append(kinds, dep.KindEngine)
	}

	parser := manifest.NewParser()
	formatter := rpm.NewFormatter(os.Stderr)

	var deps []string
	for _, path := range paths {
		logger.Debugf("Processing manifest: %s", path)

		m, err := parser.Parse(path)
		if err != nil {
			logger.Errorf("Skipping %s: %v", path, err)
			continue
		}

		reqs, err := m.Requirements(kinds...)
		if err != nil {
			logger.Errorf("Skipping %s: %v", path, err)
			continue
		}
		logger.Debugf("Found %d requirements in %s", len(reqs), path)

		for _, req := range reqs {
			expr, err := formatter.Format(req.Name, req.Spec)
			if err != nil {
				// A nonsense range fails only this requirement, never
				// the rest of the run.
				logger.Errorf("Skipping %s: %v", req.Name, err)
				continue
			}
			deps = append(deps, expr)
		}
	}

	emitter := emit.NewEmitter(os.Stdout)
	if err := emitter.Emit(deps); err != nil {
		return fmt.Errorf("writing dependencies: %w", err)
	}
	return nil
}

// readPaths reads newline-separated manifest paths, the calling
// convention RPM uses for dependency generators.
func readPaths(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}
