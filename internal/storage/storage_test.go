package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drishti/pkg/types"
)

func TestValidateImageUpload(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{"jpeg ok", "photo.jpg", 1024, nil},
		{"uppercase extension ok", "PHOTO.JPEG", 1024, nil},
		{"png ok", "photo.png", 1024, nil},
		{"gif ok", "photo.gif", 1024, nil},
		{"pdf refused for images", "proof.pdf", 1024, types.ErrUnsupportedFileType},
		{"executable refused", "photo.exe", 1024, types.ErrUnsupportedFileType},
		{"no extension refused", "photo", 1024, types.ErrUnsupportedFileType},
		{"too large", "photo.jpg", 11 << 20, types.ErrFileTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateImageUpload(tc.filename, tc.size, 10<<20)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateDocumentUpload_AllowsPDF(t *testing.T) {
	ext, contentType, err := ValidateDocumentUpload("proof.PDF", 1024, 10<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext != ".pdf" {
		t.Errorf("ext = %q, want .pdf", ext)
	}
	if contentType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", contentType)
	}
}

func TestProfilePhotoKey(t *testing.T) {
	key := ProfilePhotoKey("user-42", ".png")
	if !strings.HasPrefix(key, "profile/user-42-") {
		t.Errorf("key = %q, want profile/user-42-<ts> prefix", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q, want .png suffix", key)
	}
}

func TestDiskStorage_SaveDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()

	disk, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new disk storage: %v", err)
	}

	key := "profile/user-1-1700000000.jpg"
	if err := disk.Save(ctx, key, bytes.NewReader([]byte("jpeg bytes")), "image/jpeg"); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(disk.Root(), "profile", "user-1-1700000000.jpg")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("contents = %q", data)
	}

	if got := disk.URL(key); got != "/uploads/"+key {
		t.Errorf("url = %q", got)
	}

	if err := disk.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after delete")
	}

	// deleting a missing key is not an error
	if err := disk.Delete(ctx, key); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestDiskStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()

	disk, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new disk storage: %v", err)
	}

	err = disk.Save(ctx, "../escape.txt", bytes.NewReader([]byte("x")), "text/plain")
	if err == nil {
		t.Error("expected traversal key to be rejected")
	}
}
