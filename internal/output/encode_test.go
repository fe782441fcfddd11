package output

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"JSON", FormatJSON},
		{" yaml ", FormatYAML},
		{"text", FormatText},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, sample{"essay", 72}, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"score": 72`) {
		t.Errorf("unexpected json: %s", buf.String())
	}
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, sample{"essay", 72}, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "name: essay\nscore: 72\n" {
		t.Errorf("unexpected yaml: %q", buf.String())
	}
}

func TestEncode_TextUsesRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, FormatText, sample{}, func(w io.Writer) error {
		_, err := io.WriteString(w, "rendered")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "rendered" {
		t.Errorf("got %q", buf.String())
	}

	if err := Encode(&buf, FormatText, sample{}, nil); err == nil {
		t.Error("expected error without a text renderer")
	}
}

func TestScoreBar_ClampsAndLabels(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := ScoreBar(150, 10)
	if !strings.HasPrefix(got, strings.Repeat("█", 10)) {
		t.Errorf("expected full bar, got %q", got)
	}
	got = ScoreBar(-5, 4)
	if !strings.HasPrefix(got, "░░░░") {
		t.Errorf("expected empty bar, got %q", got)
	}
	if !strings.Contains(ScoreBar(42, 10), "42/100") {
		t.Error("expected score label")
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := TrendArrow(-3, true); got != "▼ -3.0" {
		t.Errorf("TrendArrow(-3) = %q", got)
	}
	if got := TrendArrowPercent(50, true); got != "▲ +50%" {
		t.Errorf("TrendArrowPercent(50) = %q", got)
	}
	if got := TrendArrow(0, true); got != "─" {
		t.Errorf("TrendArrow(0) = %q", got)
	}
}
