package service

import "testing"

func TestParseSeriesTitle(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSeries  string
		wantEpisode int
	}{
		{"plain episode suffix", "The Chosen Episode 3", "The Chosen", 3},
		{"short marker", "The Chosen Ep 12", "The Chosen", 12},
		{"dash separator", "The Chosen - Episode 4", "The Chosen", 4},
		{"colon separator", "The Chosen: Episode 5", "The Chosen", 5},
		{"case insensitive", "the chosen EPISODE 7", "the chosen", 7},
		{"no marker", "Sunday Service", "Sunday Service", 0},
		{"bare episode keeps full title", "Episode 3", "Episode 3", 0},
		{"episode zero rejected", "The Chosen Episode 0", "The Chosen", 0},
		{"whitespace collapsed", "  The   Chosen   Episode  2 ", "The Chosen", 2},
		{"empty", "", "", 0},
		{"episode mid-title not matched", "Episode 3 Recap", "Episode 3 Recap", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, episode := ParseSeriesTitle(tt.input)
			if series != tt.wantSeries || episode != tt.wantEpisode {
				t.Errorf("ParseSeriesTitle(%q) = (%q, %d), want (%q, %d)",
					tt.input, series, episode, tt.wantSeries, tt.wantEpisode)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  The   Chosen  ", "The Chosen"},
		{"The\tChosen", "The Chosen"},
		{"", ""},
		{"   ", ""},
		{"One Word", "One Word"},
	}

	for _, tt := range tests {
		if got := normalizeTitle(tt.input); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
