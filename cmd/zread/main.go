// Command zread writes the decompressed content of files to the standard
// output, detecting their compression format (gzip, bzip2, xz, zstd, lz4,
// snappy or none).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	log "github.com/sirupsen/logrus"

	"github.com/AdRoll/zread"
	"github.com/AdRoll/zread/pkg/zip_agnostic"
)

var (
	flagConfig  = flag.String("config", "", "path to a TOML `file` configuring the reader")
	flagDetect  = flag.Bool("detect", false, "print the format of each file instead of its content")
	flagStats   = flag.Bool("stats", false, "log stats after each file")
	flagVersion = flag.Bool("version", false, "print build version number")
	flagVerbose = flag.Bool("v", false, "verbose logging (debug level)")
	flagQuiet   = flag.Bool("q", false, "quiet logging (warn level)")
	flagPretty  = flag.Bool("pretty", false, "human-readable logging (unstructured logging)")
)

// Use `-ldflags="-X 'main.BuildVersion=someversion'"` when building zread to set this value
var BuildVersion = "-- unknown --"

func main() {
	if err := mainCLI(); err != nil {
		log.Fatal(err)
	}
}

func mainCLI() error {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stderr)

	flag.Usage = displayProgramUsage
	flag.Parse()

	if *flagVersion {
		fmt.Printf("zread version: %s\n", BuildVersion)
		return nil
	}

	if *flagVerbose && *flagQuiet {
		return fmt.Errorf("logging can't both be verbose and quiet!")
	}
	if *flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
	if *flagQuiet {
		log.SetLevel(log.WarnLevel)
	}
	if *flagPretty {
		log.SetFormatter(&log.TextFormatter{})
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		return err
	}
	if *flagStats {
		cfg.Output.Stats = true
	}
	log.WithField("c", cfg.String()).Debug("configuration")

	rcfg, err := cfg.ReaderConfig()
	if err != nil {
		return err
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, name := range names {
		ctx := log.WithFields(log.Fields{"f": "mainCLI", "fn": name})

		if *flagDetect {
			f, err := detect(rcfg, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %s\n", name, f)
			continue
		}

		stats, err := decompress(w, rcfg, name)
		if err != nil {
			return err
		}
		if cfg.Output.Stats {
			fields := log.Fields{}
			for k, v := range stats.Map() {
				fields[k] = v
			}
			ctx.WithFields(fields).Info("done")
		}
	}
	return w.Flush()
}

func loadConfig(path string) (*zread.Config, error) {
	if path == "" {
		return zread.NewConfigFromToml(strings.NewReader(""))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("errors opening config: %v", err)
	}
	defer f.Close()
	return zread.NewConfigFromToml(f)
}

// A fileReader reads the decompressed content of a file.
type fileReader interface {
	io.ReadCloser
	Detect() (zread.Format, error)
	Stats() zread.Stats
}

// open returns a reader over the decompressed content of the named file, or
// of the standard input if name is "-".
func open(cfg zread.ReaderConfig, name string) (fileReader, error) {
	if name == "-" {
		// Stdin is borrowed, it's not ours to close.
		rc, err := zip_agnostic.NewReaderWithConfig(os.Stdin, cfg)
		if err != nil {
			return nil, err
		}
		fr, ok := rc.(fileReader)
		if !ok {
			rc.Close()
			return nil, fmt.Errorf("unexpected reader type %T", rc)
		}
		return fr, nil
	}
	return cfg.Open(name)
}

func detect(cfg zread.ReaderConfig, name string) (zread.Format, error) {
	r, err := open(cfg, name)
	if err != nil {
		return zread.FormatNone, fmt.Errorf("%s: %w", name, err)
	}
	defer r.Close()

	f, err := r.Detect()
	if err != nil {
		return f, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// decompress copies the decompressed content of name to w.
func decompress(w io.Writer, cfg zread.ReaderConfig, name string) (zread.Stats, error) {
	r, err := open(cfg, name)
	if err != nil {
		return zread.Stats{}, fmt.Errorf("%s: %w", name, err)
	}
	defer r.Close()

	if _, err := io.Copy(w, r); err != nil {
		return zread.Stats{}, fmt.Errorf("%s: %w", name, err)
	}
	return r.Stats(), nil
}

var programUsageTemplate = template.Must(template.New("Program usage").Parse(`
zread version: {{ .Build }}

Usage: {{ .ExecName }} [options] [FILE...]

Writes the decompressed content of each FILE to the standard output. With no
FILE, or when FILE is -, read the standard input.

Options:
{{ .Defaults }}

Available formats:
{{ range .Formats }}
  * {{ . }}{{ end }}

`))

func displayProgramUsage() {
	type programUsage struct {
		Build    string
		ExecName string
		Defaults string
		Formats  []zread.Format
	}

	var defaultsBuilder strings.Builder
	flag.CommandLine.SetOutput(&defaultsBuilder)
	flag.PrintDefaults()

	if err := programUsageTemplate.Execute(os.Stderr, &programUsage{
		Build:    BuildVersion,
		ExecName: os.Args[0],
		Defaults: defaultsBuilder.String(),
		Formats:  zread.Available().Formats(),
	}); err != nil {
		panic(err)
	}
}
