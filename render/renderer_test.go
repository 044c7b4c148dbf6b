package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteConcatList(t *testing.T) {
	dir := t.TempDir()
	listFile := filepath.Join(dir, "concat_list.txt")

	clips := []string{
		filepath.Join(dir, "stock_1.mp4"),
		filepath.Join(dir, "stock_2.mp4"),
	}
	if err := writeConcatList(listFile, clips); err != nil {
		t.Fatalf("writeConcatList returned error: %v", err)
	}

	data, err := os.ReadFile(listFile)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "file '") || !strings.HasSuffix(line, "'") {
			t.Errorf("line %d not in concat demuxer form: %q", i, line)
		}
		if !strings.Contains(line, clips[i]) {
			t.Errorf("line %d = %q, want absolute path of %q", i, line, clips[i])
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"31.416000\n", 31.416, false},
		{"  12.5  ", 12.5, false},
		{"0.000000", 0, false},
		{"", 0, true},
		{"N/A", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDuration(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDuration(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
