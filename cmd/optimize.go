package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"perfbot/internal/backup"
	"perfbot/internal/debug"
	"perfbot/internal/extract"
	"perfbot/internal/format"
	"perfbot/internal/llm"
	"perfbot/internal/optimize"
	"perfbot/internal/project"
	"perfbot/internal/tree"
)

// Context files summarizing the repository, attached to the identify
// request when present.
var contextFiles = []string{
	"repo-info/one-file-compressed.txt",
	"repo-info/one-file-uncompressed.txt",
}

// defaultFallbacks are used when the model response yields no usable path.
var defaultFallbacks = []string{
	"render/fluid.wgsl",
	"render/fluidRender.ts",
	"src/renderers/FluidRenderer.js",
	"src/renderers/Renderer.js",
	"src/shaders/render.wgsl",
}

// RunOptimize handles the optimize subcommand: identify the most
// optimization-worthy file (unless one is given) and rewrite it in place.
func RunOptimize(args []string) {
	fs := flag.NewFlagSet("perfbot optimize", flag.ExitOnError)
	model := fs.String("model", "", "Generation model name")
	endpoint := fs.String("endpoint", "", "Generation endpoint URL")
	fallbackList := fs.String("fallbacks", "", "Comma-separated fallback paths")
	fs.Parse(args)

	paths := mustPaths()
	client := llm.NewClient(*endpoint, *model)

	fallbacks := defaultFallbacks
	if *fallbackList != "" {
		fallbacks = strings.Split(*fallbackList, ",")
	}

	target := fs.Arg(0)
	if target == "" {
		target = identifyTarget(paths, client, fallbacks)
	}
	if target == "" {
		fmt.Fprintln(os.Stderr, "Error: could not identify a file to optimize")
		os.Exit(1)
	}

	fmt.Printf("Target file: %s%s%s\n", format.Bold, target, format.Reset)

	opt := &optimize.Optimizer{
		Store: backup.NewStore(),
		Gen:   client,
		Warnf: func(f string, a ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+f+"\n", a...)
		},
	}

	abs := paths.Resolve(target)
	fmt.Printf("Requesting optimized rewrite from %s...\n", client.Model())
	if err := opt.Optimize(context.Background(), abs); err != nil {
		debug.Log(paths.LogDir, "optimize.log", "rewrite failed", map[string]string{
			"file": target, "error": err.Error(),
		})
		fatalf("optimization failed: %v", err)
	}

	debug.Log(paths.LogDir, "optimize.log", "rewrite complete", map[string]string{
		"file": target, "model": client.Model(),
	})

	fmt.Printf("%sOptimization complete.%s %s was updated in place.\n", format.Green, format.Reset, target)
	fmt.Printf("A backup of the original was saved to %s\n", backup.BackupPath(target))
	fmt.Printf("Run %sperfbot compare %s%s to measure the effect.\n", format.Bold, target, format.Reset)
}

// identifyTarget asks the generation service which file is most worth
// optimizing. With no context files on disk, it falls back to probing the
// fallback list directly.
func identifyTarget(paths project.Paths, client *llm.Client, fallbacks []string) string {
	var files []llm.File
	for _, rel := range contextFiles {
		if f, ok := llm.EncodeFile(paths.Resolve(rel)); ok {
			f.Name = rel
			files = append(files, f)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no repo context files found, probing fallback paths.")
		for _, fb := range fallbacks {
			if _, err := os.Stat(paths.Resolve(fb)); err == nil {
				return fb
			}
		}
		if len(fallbacks) > 0 {
			return fallbacks[0]
		}
		return ""
	}

	listing := tree.Listing(paths.Root)
	prompt := identifyPrompt(listing, fallbacks)

	fmt.Println("Asking which file is most worth optimizing...")
	raw, err := client.Generate(context.Background(), prompt, files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: identification request failed: %v\n", err)
		if len(fallbacks) > 0 {
			return fallbacks[0]
		}
		return ""
	}

	debug.LogText(paths.LogDir, "optimize.log", "raw identify response", raw)

	cand := extract.Extract(raw, fallbacks)
	if cand.Provenance == extract.FromFallback {
		fmt.Fprintf(os.Stderr, "Warning: no file path in model response, using fallback %s\n", cand.Path)
	}
	return cand.Path
}

func identifyPrompt(listing string, fallbacks []string) string {
	var b strings.Builder
	b.WriteString(`Your task is to analyze this project's code and identify ONE file that would yield significant performance improvement if optimized.

Project structure:
`)
	b.WriteString(listing)
	b.WriteString(`

INSTRUCTIONS:
1. Return EXACTLY ONE file path
2. The response must contain ONLY the file path with extension
3. DO NOT include ANY explanations or thoughts - just the file path
4. DO NOT use ANY tags like <think>
5. DO NOT wrap in quotes

Example of valid responses:
render/fluidRender.ts
src/renderers/FluidRenderer.js

If you can't find a suitable file, select one of these paths:
`)
	for _, fb := range fallbacks {
		b.WriteString(fb)
		b.WriteString("\n")
	}
	b.WriteString("\nRESPOND WITH JUST THE FILE PATH:")
	return b.String()
}
