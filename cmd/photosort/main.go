package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yrbane/photosort/internal/catalog"
	"github.com/yrbane/photosort/internal/export"
	"github.com/yrbane/photosort/internal/gallery"
	"github.com/yrbane/photosort/internal/server"
	"github.com/yrbane/photosort/internal/sortengine"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	command := os.Args[1]

	switch command {
	case "version", "--version", "-v":
		fmt.Printf("photosort version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	case "sort":
		handleSort()
	case "tag":
		handleTag()
	case "rate":
		handleRate()
	case "gallery":
		handleGallery()
	case "serve":
		handleServe()
	case "export":
		handleExport()
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("photosort - resumable photo sorting and browsing")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  photosort <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  sort     Import photos from a source directory into a sorted archive")
	fmt.Println("  tag      Add or remove a tag on a photo")
	fmt.Println("  rate     Set or clear a photo's rating")
	fmt.Println("  gallery  Generate a static gallery.html for an archive")
	fmt.Println("  serve    Serve an archive's gallery and editing API over HTTP")
	fmt.Println("  export   Copy photos matching a tag and/or rating into a directory")
	fmt.Println("  version  Show version information")
	fmt.Println("  help     Show this help message")
	fmt.Println("")
	fmt.Println("Run 'photosort <command> --help' for more information on a command.")
}

func handleSort() {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	output := fs.String("output", "", "Output directory (default: {source}_sorted alongside source)")
	fs.StringVar(output, "o", "", "Shorthand for --output")
	fs.Usage = func() {
		fmt.Println("Usage: photosort sort <source> [--output dir]")
		fmt.Println("")
		fmt.Println("Import photographs from source into a year-partitioned archive,")
		fmt.Println("resuming any prior interrupted run and skipping known duplicates.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: source directory is required")
		fs.Usage()
		os.Exit(1)
	}

	source := fs.Arg(0)
	outputDir := *output
	if outputDir == "" {
		outputDir = resolveOutputDir(source)
	}

	summary, err := sortengine.RunSort(source, outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Copied %d, skipped %d, duplicates %d, years touched %d\n",
		summary.Copied, summary.Skipped, summary.Duplicates, len(summary.YearsCreated))
}

// resolveOutputDir mirrors the default the original tool picked when no
// -o was given: a sibling directory named "{source}_sorted".
func resolveOutputDir(source string) string {
	clean := filepath.Clean(source)
	return clean + "_sorted"
}

func handleTag() {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	remove := fs.Bool("remove", false, "Remove the tag instead of adding it")
	fs.BoolVar(remove, "r", false, "Shorthand for --remove")
	fs.Usage = func() {
		fmt.Println("Usage: photosort tag <dir> <file> <tag> [--remove]")
		fmt.Println("")
		fmt.Println("Add (or with -r, remove) a tag on a single archived photo.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Error: dir, file, and tag are required")
		fs.Usage()
		os.Exit(1)
	}

	dir, file, tag := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	path := metadataPath(dir)
	metadata, err := catalog.LoadMetadata(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *remove {
		metadata.RemoveTag(file, tag)
	} else {
		metadata.AddTag(file, tag)
	}

	if err := metadata.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleRate() {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: photosort rate <dir> <file> <rating>")
		fmt.Println("")
		fmt.Println("Set a photo's rating (0-5; 0 clears it).")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Error: dir, file, and rating are required")
		fs.Usage()
		os.Exit(1)
	}

	dir, file, ratingArg := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	rating, err := strconv.Atoi(ratingArg)
	if err != nil || rating < 0 || rating > 5 {
		fmt.Fprintln(os.Stderr, "Error: rating must be an integer 0-5")
		os.Exit(1)
	}

	path := metadataPath(dir)
	metadata, err := catalog.LoadMetadata(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if rating == 0 {
		metadata.SetRating(file, nil)
	} else {
		metadata.SetRating(file, &rating)
	}

	if err := metadata.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleGallery() {
	fs := flag.NewFlagSet("gallery", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: photosort gallery <dir>")
		fmt.Println("")
		fmt.Println("Generate a static gallery.html inside dir.")
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: dir is required")
		fs.Usage()
		os.Exit(1)
	}

	dir := fs.Arg(0)
	metadata, err := catalog.LoadMetadata(metadataPath(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	idx, err := catalog.BuildIndex(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	html, err := gallery.GenerateHTML(idx, metadata)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(dir, "gallery.html")
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d photos)\n", outPath, idx.TotalPhotos())
}

func handleServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Listen port")
	fs.IntVar(port, "p", 8080, "Shorthand for --port")
	fs.Usage = func() {
		fmt.Println("Usage: photosort serve <dir> [--port N]")
		fmt.Println("")
		fmt.Println("Serve dir's gallery and editing API over HTTP.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: dir is required")
		fs.Usage()
		os.Exit(1)
	}

	dir := fs.Arg(0)
	if err := server.Serve(dir, *port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	tag := fs.String("tag", "", "Only export photos with this tag")
	minRating := fs.Int("rating", -1, "Only export photos rated at least this high")
	fs.StringVar(tag, "t", "", "Shorthand for --tag")
	fs.IntVar(minRating, "r", -1, "Shorthand for --rating")
	fs.Usage = func() {
		fmt.Println("Usage: photosort export <dir> <dest> [--tag T] [--rating R]")
		fmt.Println("")
		fmt.Println("Copy photos matching the given tag and/or minimum rating into dest.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: dir and dest are required")
		fs.Usage()
		os.Exit(1)
	}

	dir, dest := fs.Arg(0), fs.Arg(1)
	metadata, err := catalog.LoadMetadata(metadataPath(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	idx, err := catalog.BuildIndex(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var allFiles []string
	for _, year := range idx.Years() {
		allFiles = append(allFiles, idx.ByYear[year]...)
	}

	filter := export.Filter{Tag: *tag}
	if *minRating >= 0 {
		filter.MinRating = minRating
	}

	n, err := export.Run(dir, dest, filter, allFiles, metadata)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d photos to %s\n", n, dest)
}

func metadataPath(dir string) string {
	return filepath.Join(dir, catalog.MetadataFileName)
}
