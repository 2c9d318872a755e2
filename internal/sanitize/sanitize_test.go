package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"plain text trimmed", "  bring snacks ", "bring snacks"},
		{"ampersand kept", "Koffie & thee", "Koffie & thee"},
		{"tags stripped", "<b>Team1</b>", "Team1"},
		{"nested tags stripped", "<p><em>Dinsdag</em> ochtend</p>", "Dinsdag ochtend"},
		{"markup only", "<br/>", ""},
		{"quotes kept", `Tom's "A" team`, `Tom's "A" team`},
		{"encoded markup stripped", "&lt;img src=x onerror=alert(1)&gt;", ""},
		{"encoded tags around text", "&lt;b&gt;Team1&lt;/b&gt;", "Team1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
