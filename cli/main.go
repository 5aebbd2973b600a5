package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alitto/pond"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/crypto/ssh"

	"github.com/Octogonapus/BenchmarkCharts/chart"
	"github.com/Octogonapus/BenchmarkCharts/report"
	"github.com/Octogonapus/BenchmarkCharts/source"
)

func main() {
	reportURI := flag.String("report", "benchmarks-results.json", "The benchmark results to chart. A local path, an ssh://user@host/path URI, or an s3://bucket/key URI. An s3 key ending in / is a prefix; the newest versioned report under it is used.")
	outDir := flag.String("out-dir", "charts", "Write the rendered charts into this directory.")
	htmlPage := flag.Bool("html", true, "Also write an interactive charts.html next to the PNGs.")
	chartConcurrency := flag.Int("chart-concurrency", 4, "How many scenario charts can be rendered concurrently.")
	sshKeyPath := flag.String("ssh-key", "", "Private key used for ssh:// report URIs.")
	sshPassword := flag.String("ssh-password", "", "Password used for ssh:// report URIs when no key is given.")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	opts := source.Options{}
	if *sshKeyPath != "" {
		buf, err := os.ReadFile(*sshKeyPath)
		if err != nil {
			panic(err)
		}
		signer, err := ssh.ParsePrivateKey(buf)
		if err != nil {
			panic(err)
		}
		opts.SSHAuths = append(opts.SSHAuths, ssh.PublicKeys(signer))
	}
	if *sshPassword != "" {
		opts.SSHAuths = append(opts.SSHAuths, ssh.Password(*sshPassword))
	}
	if strings.HasPrefix(*reportURI, "s3://") {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			panic(err)
		}
		opts.AWSConfig = cfg
	}

	src, err := source.ForURI(*reportURI, opts)
	if err != nil {
		panic(err)
	}
	slog.Info("fetching benchmark results", slog.String("source", src.String()))
	buf, err := src.Fetch(context.Background())
	if err != nil {
		panic(err)
	}

	rep, err := report.Parse(bytes.NewReader(buf))
	if err != nil {
		panic(err)
	}
	names := rep.Names()
	slog.Info("loaded benchmark results",
		slog.Int("benchmarks", len(rep.IDs())),
		slog.Int("names", len(names)),
		slog.Int("modes", len(rep.Modes())))

	err = os.MkdirAll(*outDir, 0o755)
	if err != nil {
		panic(err)
	}

	runtimePlot, err := chart.RuntimePlot(rep)
	if err != nil {
		panic(err)
	}
	err = chart.SavePNG(runtimePlot, filepath.Join(*outDir, "runtime.png"))
	if err != nil {
		panic(err)
	}

	errCh := make(chan error, len(names))
	pool := pond.New(*chartConcurrency, 0, pond.MinWorkers(*chartConcurrency))
	p := progressbar.Default(int64(len(names)), "Rendering scenario charts:")
	for _, name := range names {
		pool.Submit(func() {
			defer p.Add(1)
			scenarioPlot, err := chart.ScenarioAveragePlot(rep, name)
			if err != nil {
				slog.Error("rendering scenario chart failed", slog.String("name", name), slog.String("error", err.Error()))
				errCh <- err
				return
			}
			err = chart.SavePNG(scenarioPlot, filepath.Join(*outDir, "scenarios-"+name+".png"))
			if err != nil {
				slog.Error("saving scenario chart failed", slog.String("name", name), slog.String("error", err.Error()))
				errCh <- err
			}
		})
	}
	pool.StopAndWait()
	close(errCh)
	for err := range errCh {
		panic(err)
	}

	if *htmlPage {
		f, err := os.Create(filepath.Join(*outDir, "charts.html"))
		if err != nil {
			panic(err)
		}
		err = chart.BuildPage(f, rep)
		closeErr := f.Close()
		if err != nil {
			panic(err)
		}
		if closeErr != nil {
			panic(closeErr)
		}
	}

	slog.Info("finished rendering charts", slog.String("dir", *outDir))
}
