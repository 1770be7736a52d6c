package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "app.log")
	err := Setup(LogConfig{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatal(err)
	}

	l := WithComponent("billing")
	l.Info().Str("bill_no", "RA-1").Msg("generated")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"component":"billing"`, `"bill_no":"RA-1"`, `"message":"generated"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %s: %s", want, data)
		}
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if err := Setup(LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error")
	}
}
