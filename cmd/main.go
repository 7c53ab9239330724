// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Command docforge-catalog builds a site's Content Catalog from a tree of
// local component-version directories (each bearing a component.yml next
// to its modules/ tree, the local-filesystem analogue of an aggregated git
// checkout), classifies it, converts every page, and writes the published
// tree to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/gardener/docforge-catalog/asciidoc"
	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/classifier"
	"github.com/gardener/docforge-catalog/convert"
	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/aggregate"
	"github.com/gardener/docforge-catalog/playbook"
	"github.com/gardener/docforge-catalog/resolver"
)

func main() {
	if len(os.Getenv("GOMAXPROCS")) == 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer func() {
		signal.Stop(sig)
		cancel()
	}()
	go func() {
		<-sig
		cancel()
		<-sig
		os.Exit(1)
	}()

	input := flag.String("input", "", "root directory containing one subdirectory per component version")
	output := flag.String("output", "./public", "output directory for the published site")
	playbookPath := flag.String("playbook", "", "path to a playbook.yml (optional)")
	siteStartPage := flag.String("site-start-page", "", "resource id of the site-wide start page")
	keepSource := flag.Bool("keep-source", false, "retain Src.Contents after conversion")
	flag.Parse()

	if *input == "" {
		klog.Error("--input is required")
		os.Exit(2)
	}

	if err := run(ctx, *input, *output, *playbookPath, *siteStartPage, *keepSource); err != nil {
		klog.Errorf("build failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inputDir, outputDir, playbookPath, siteStartPage string, keepSource bool) error {
	cfg := playbook.Default()
	if playbookPath != "" {
		data, err := os.ReadFile(playbookPath)
		if err != nil {
			return fmt.Errorf("reading playbook: %w", err)
		}
		cfg, err = playbook.Parse(data)
		if err != nil {
			return err
		}
	}

	diag := diagnostics.NewSink(diagnostics.LevelError)
	cat := catalog.New(cfg, diag)
	res := resolver.New(cat)

	buckets, err := aggregate.LoadBuckets(inputDir)
	if err != nil {
		return fmt.Errorf("aggregating %s: %w", inputDir, err)
	}

	cl := classifier.New(cat, res, cfg.Asciidoc.Attributes, diag)
	if err := cl.ClassifyAll(buckets, siteStartPage); err != nil {
		return fmt.Errorf("classifying: %w", err)
	}

	proc := asciidoc.New(cat, res, diag, cfg.URLs.HTMLExtensionStyle)
	driver := convert.New(cat, proc, diag)
	driver.KeepSource = keepSource
	if err := driver.Run(); err != nil {
		return fmt.Errorf("converting: %w", err)
	}

	if err := writePages(ctx, cat, outputDir); err != nil {
		return err
	}

	if diag.FailOnExit() {
		return fmt.Errorf("one or more diagnostics reached the failure level")
	}
	return nil
}

func writePages(ctx context.Context, cat *catalog.Catalog, outputDir string) error {
	for _, page := range cat.GetPages(catalog.FindByCriteria{}) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if page.Out == nil {
			continue
		}
		dest := filepath.Join(outputDir, filepath.FromSlash(page.Out.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, page.Contents, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}
