package observer

import "testing"

func TestIsDeckFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"deck.pptx", true},
		{"DECK.PPTX", true},
		{"old-deck.ppt", true},
		{"/stage/intro.pptx", true},
		{"notes.docx", false},
		{"deck.pptx.part", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDeckFile(tt.path); got != tt.want {
			t.Errorf("IsDeckFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestBibliographyID(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Intro to Biology (v2).pptx", "intro-to-biology-v2"},
		{"cells.pptx", "cells"},
		{"/stage/Mitosis & Meiosis.pptx", "mitosis-meiosis"},
		{"SZÁMTAN_1.pptx", "sz-mtan-1"},
		{"---.pptx", ""},
	}
	for _, tt := range tests {
		if got := BibliographyID(tt.filename); got != tt.want {
			t.Errorf("BibliographyID(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
