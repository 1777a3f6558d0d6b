package ocr

import (
	"reflect"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"line", LevelLine, false},
		{"LINE", LevelLine, false},
		{" word ", LevelWord, false},
		{"block", LevelBlock, false},
		{"paragraph", LevelParagraph, false},
		{"symbol", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()

	if opts.Language != "eng" {
		t.Errorf("Language: got %q, want eng", opts.Language)
	}
	if opts.PageSegMode != DefaultPageSegMode {
		t.Errorf("PageSegMode: got %d, want %d", opts.PageSegMode, DefaultPageSegMode)
	}
	if opts.Level != LevelLine {
		t.Errorf("Level: got %q, want line", opts.Level)
	}

	custom := Options{Language: "deu", PageSegMode: 6, Level: LevelWord, TessdataPrefix: "/data"}.withDefaults()
	if custom.Language != "deu" || custom.PageSegMode != 6 || custom.Level != LevelWord || custom.TessdataPrefix != "/data" {
		t.Errorf("explicit values should be kept, got %+v", custom)
	}
}

func TestOptions_Languages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"eng", []string{"eng"}},
		{"eng+deu", []string{"eng", "deu"}},
		{" eng + fra +", []string{"eng", "fra"}},
	}

	for _, tt := range tests {
		got := Options{Language: tt.in}.languages()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("languages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinFragments(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"nil", nil, ""},
		{"single", []string{"Fever"}, "Fever"},
		{"lines with newlines", []string{"Acute fever\n", "Dry  cough\n\n"}, "Acute fever Dry cough"},
		{"empty fragments dropped", []string{"", " \n", "Headache"}, "Headache"},
		{"tabs collapsed", []string{"Blood\tpressure"}, "Blood pressure"},
		{"punctuation kept", []string{"Fever, chills", "\"mild\""}, "Fever, chills \"mild\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinFragments(tt.fragments); got != tt.want {
				t.Errorf("JoinFragments() = %q, want %q", got, tt.want)
			}
		})
	}
}
