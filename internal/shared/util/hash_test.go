package util

import "testing"

func TestHashUserKeyStable(t *testing.T) {
	a := HashUserKey("google:123")
	b := HashUserKey("google:123")
	if a != b {
		t.Fatalf("expected stable hash, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashUserKeyDistinct(t *testing.T) {
	if HashUserKey("google:123") == HashUserKey("google:124") {
		t.Fatal("expected distinct hashes for distinct users")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "pancakes.pdf", want: "pancakes.pdf"},
		{in: "  chili con carne.jpg ", want: "chili con carne.jpg"},
		{in: "a/b.png", want: "a_b.png"},
		{in: "a\\b.png", want: "a_b.png"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
