package gcode

import (
	"testing"
)

func TestParseCommands(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		input   string
		cmdType byte
		cmdNum  int
		params  map[byte]float64
	}{
		{"G0 X10 Y20", 'G', 0, map[byte]float64{'X': 10, 'Y': 20}},
		{"G1 X100.5 Y200.25 F3000", 'G', 1, map[byte]float64{'X': 100.5, 'Y': 200.25, 'F': 3000}},
		{"G28", 'G', 28, map[byte]float64{}},
		{"G29", 'G', 29, map[byte]float64{}},
		{"M104 S200", 'M', 104, map[byte]float64{'S': 200}},
		{"M303 E-1 S60 C5", 'M', 303, map[byte]float64{'E': -1, 'S': 60, 'C': 5}},
		{"M73 P42 R17", 'M', 73, map[byte]float64{'P': 42, 'R': 17}},
		{"M600 T0", 'M', 600, map[byte]float64{'T': 0}},
		{"M851 Z-1.25", 'M', 851, map[byte]float64{'Z': -1.25}},
		{"g1 x10 y20", 'G', 1, map[byte]float64{'X': 10, 'Y': 20}},
	}

	for _, test := range tests {
		cmd, err := parser.ParseLine(test.input)
		if err != nil {
			t.Errorf("Failed to parse '%s': %v", test.input, err)
			continue
		}
		if cmd == nil {
			t.Errorf("Got nil command for '%s'", test.input)
			continue
		}
		if cmd.Type != test.cmdType {
			t.Errorf("Expected type %c, got %c for '%s'", test.cmdType, cmd.Type, test.input)
		}
		if cmd.Number != test.cmdNum {
			t.Errorf("Expected number %d, got %d for '%s'", test.cmdNum, cmd.Number, test.input)
		}
		for param, value := range test.params {
			if !cmd.HasParameter(param) {
				t.Errorf("Missing parameter %c in '%s'", param, test.input)
			} else if cmd.GetParameter(param, 0) != value {
				t.Errorf("Expected %c=%f, got %c=%f in '%s'",
					param, value, param, cmd.GetParameter(param, 0), test.input)
			}
		}
	}
}

func TestParseText(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		input string
		text  string
	}{
		{"M117 Printing cube", "Printing cube"},
		{"M117   padded  ", "padded"},
		{"M0 Click to continue ; wait", "Click to continue"},
		{"M117", ""},
	}

	for _, test := range tests {
		cmd, err := parser.ParseLine(test.input)
		if err != nil || cmd == nil {
			t.Fatalf("Failed to parse '%s': %v", test.input, err)
		}
		if cmd.Text != test.text {
			t.Errorf("'%s': text %q, want %q", test.input, cmd.Text, test.text)
		}
	}
}

func TestParseComments(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		input   string
		comment string
	}{
		{"; This is a comment", "; This is a comment"},
		{"G0 X10 ; Move to X10", "; Move to X10"},
		{"(This is a comment)", "(This is a comment)"},
	}

	for _, test := range tests {
		cmd, err := parser.ParseLine(test.input)
		if err != nil {
			t.Errorf("Failed to parse '%s': %v", test.input, err)
			continue
		}
		if cmd == nil {
			t.Errorf("Got nil command for '%s'", test.input)
			continue
		}
		if cmd.Comment != test.comment {
			t.Errorf("'%s': comment %q, want %q", test.input, cmd.Comment, test.comment)
		}
	}
}

func TestParseEmptyLine(t *testing.T) {
	parser := NewParser()

	for _, line := range []string{"", "   ", "\t"} {
		cmd, err := parser.ParseLine(line)
		if err != nil {
			t.Errorf("Blank line should not error: %v", err)
		}
		if cmd != nil {
			t.Errorf("Blank line %q should return nil command", line)
		}
	}
}

func TestGetParameterDefault(t *testing.T) {
	cmd, _ := NewParser().ParseLine("M220")
	if cmd.HasParameter('S') {
		t.Fatal("M220 has no S")
	}
	if got := cmd.GetParameter('S', 100); got != 100 {
		t.Errorf("default = %f, want 100", got)
	}
}
