package anchor

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		anchor Anchor
		ok     bool
	}{
		{"quiz", Anchor{BibliographyID: "bib-1", SlideNumber: 3, Kind: KindQuiz}, true},
		{"note", Anchor{BibliographyID: "bib-1", SlideNumber: 1, Kind: KindNote}, true},
		{"poll", Anchor{BibliographyID: "bib-1", SlideNumber: 9, Kind: KindPoll}, true},
		{"missing bibliography", Anchor{SlideNumber: 1, Kind: KindQuiz}, false},
		{"zero slide", Anchor{BibliographyID: "bib-1", SlideNumber: 0, Kind: KindQuiz}, false},
		{"negative slide", Anchor{BibliographyID: "bib-1", SlideNumber: -2, Kind: KindQuiz}, false},
		{"unknown kind", Anchor{BibliographyID: "bib-1", SlideNumber: 1, Kind: "dance"}, false},
		{"empty kind", Anchor{BibliographyID: "bib-1", SlideNumber: 1}, false},
	}
	for _, tt := range tests {
		err := tt.anchor.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
