package frontmatter

import (
	"context"
	"os"
	"testing"
)

func TestLoaderDiscover(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{
		Pattern:   "*.md",
		Recursive: true,
	})

	sources, err := loader.Discover(context.Background(), ".")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 markdown sources, got %d", len(sources))
	}
	// Sorted by path, so the nested post comes first.
	if sources[0].Path != "_posts/2024-03-05-hello.md" {
		t.Fatalf("unexpected first source: %q", sources[0].Path)
	}
	if sources[1].Path != "about.md" {
		t.Fatalf("unexpected second source: %q", sources[1].Path)
	}
	if len(sources[0].Data) == 0 {
		t.Fatalf("expected source data to be read")
	}
}

func TestLoaderDiscoverNonRecursive(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{
		Pattern:   "*.md",
		Recursive: false,
	})

	sources, err := loader.Discover(context.Background(), ".")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(sources) != 1 || sources[0].Path != "about.md" {
		t.Fatalf("expected only the root document, got %#v", sources)
	}
}

func TestLoaderSkipsNonMarkdown(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{
		Pattern:   "*",
		Recursive: true,
	})

	sources, err := loader.Discover(context.Background(), ".")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	for _, source := range sources {
		if source.Path == "notes.txt" {
			t.Fatalf("non-markdown file discovered: %q", source.Path)
		}
	}
}

func TestLoaderReadFile(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{Pattern: "*.md"})

	source, err := loader.ReadFile(context.Background(), "about.md")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if source.Path != "about.md" {
		t.Fatalf("path mismatch: %q", source.Path)
	}
	if len(source.Data) == 0 {
		t.Fatalf("expected data")
	}
	if source.ModTime.IsZero() {
		t.Fatalf("expected modification time")
	}
}

func TestLoaderDiscoverCancelled(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{Pattern: "*.md", Recursive: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.Discover(ctx, "."); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
