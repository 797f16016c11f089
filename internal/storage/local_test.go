package storage

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"testing"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	content := []byte("fake png bytes")
	if err := store.Save(ctx, "a.png", bytes.NewReader(content), int64(len(content)), "image/png"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reader, err := store.Open(ctx, "a.png")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	got, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content mismatch: got %q", got)
	}

	if err := store.Delete(ctx, "a.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Open(ctx, "a.png"); err == nil {
		t.Error("expected open to fail after delete")
	}

	// deleting a missing file is not an error
	if err := store.Delete(ctx, "a.png"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestLocalStore_RejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"../escape.png", "a/b.png", "..", "."} {
		if err := store.Save(ctx, name, bytes.NewReader(nil), 0, ""); err == nil {
			t.Errorf("expected save of %q to be rejected", name)
		}
		if _, err := store.Open(ctx, name); err == nil {
			t.Errorf("expected open of %q to be rejected", name)
		}
	}
}

func TestGenerateFilename(t *testing.T) {
	name, err := GenerateFilename("My Photo.PNG")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !regexp.MustCompile(`^\d+-[0-9a-f]{16}\.png$`).MatchString(name) {
		t.Errorf("unexpected filename format: %q", name)
	}

	other, err := GenerateFilename("My Photo.PNG")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if name == other {
		t.Error("expected distinct generated names")
	}
}
