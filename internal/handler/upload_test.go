package handler

import "testing"

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"hero.png", true},
		{"foto.jpg", true},
		{"FOTO.JPG", true},
		{"anim.gif", true},
		{"plato.jpeg", true},
		{"malware.exe", false},
		{"doc.pdf", false},
		{"noext", false},
		{"", false},
		{"trick.png.exe", false},
	}
	for _, tt := range tests {
		if got := allowedFile(tt.name); got != tt.want {
			t.Errorf("allowedFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hero.png", "hero.png"},
		{"../../etc/passwd", "passwd"},
		{"mi plato.jpg", "mi_plato.jpg"},
		{"año-nuevo.png", "a_o-nuevo.png"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
