package pipeline

import "testing"

func TestCleanTranscript(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"parenthetical", "So (inaudible) we shipped it", "So we shipped it"},
		{"whitespace", "too   many\t spaces\n here", "too many spaces here"},
		{"word run", "go go go team", "go team"},
		{"word run of two kept", "very very good", "very very good"},
		{"phrase run", "really good really good really good point", "really good point"},
		{"mixed", "Okay okay okay (cough) let's   start", "Okay let's start"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanTranscript(tc.in)
			if got != tc.want {
				t.Fatalf("CleanTranscript(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanTranscriptIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Alice: We will ship ship ship the launch (hopefully) next week next week next week.",
		"plain sentence with no artifacts at all",
		"go go go go go",
		"a b a b c a b",
	}
	for _, in := range inputs {
		once := CleanTranscript(in)
		twice := CleanTranscript(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
