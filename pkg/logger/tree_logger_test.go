package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestZerologTreeLogger(t *testing.T) {
	for name, tc := range map[string]struct {
		level Type
		msg   string
		want  map[string]string
	}{
		"warn": {
			level: WARN,
			msg:   "class com.foo.Bar is not generated",
			want: map[string]string{
				"level":   "warn",
				"type":    "WARN",
				"message": "class com.foo.Bar is not generated",
			},
		},
		"error": {
			level: ERROR,
			msg:   "boom",
			want: map[string]string{
				"level":   "error",
				"type":    "ERROR",
				"message": "boom",
			},
		},
		"spam": {
			level: SPAM,
			msg:   "noise",
			want: map[string]string{
				"level":   "trace",
				"type":    "SPAM",
				"message": "noise",
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewZerologTreeLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))
			l.Log(tc.level, tc.msg)

			got := make(map[string]string)
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", buf.String(), err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestZerologTreeLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologTreeLogger(zerolog.New(&buf).Level(ZerologLevel(WARN)))
	l.Log(DEBUG, "dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	l.Log(WARN, "kept")
	if buf.Len() == 0 {
		t.Error("expected output for WARN")
	}
}

func TestParseType(t *testing.T) {
	for name, tc := range map[string]struct {
		in      string
		want    Type
		wantErr bool
	}{
		"upper":   {in: "WARN", want: WARN},
		"lower":   {in: "debug", want: DEBUG},
		"unknown": {in: "loud", want: ALL, wantErr: true},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseType(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if got := Type(42).String(); got != "Type(42)" {
		t.Errorf("unexpected %q", got)
	}
	if got := INFO.String(); got != "INFO" {
		t.Errorf("unexpected %q", got)
	}
}
