package gwlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestGWLog(t *testing.T) {
	SetSource("gwlog_test")
	SetOutput([]string{"stderr"})
	SetLevel(DebugLevel)

	if lv := ParseLevel("debug"); lv != DebugLevel {
		t.Fail()
	}
	if lv := ParseLevel("info"); lv != InfoLevel {
		t.Fail()
	}
	if lv := ParseLevel("warn"); lv != WarnLevel {
		t.Fail()
	}
	if lv := ParseLevel("warning"); lv != WarnLevel {
		t.Fail()
	}
	if lv := ParseLevel("error"); lv != ErrorLevel {
		t.Fail()
	}
	if lv := ParseLevel("panic"); lv != PanicLevel {
		t.Fail()
	}
	if lv := ParseLevel("fatal"); lv != FatalLevel {
		t.Fail()
	}

	Debugf("this is a debug %d", 1)
	SetLevel(InfoLevel)
	Debugf("SHOULD NOT SEE THIS!")
	Infof("this is an info %d", 2)
	Warnf("this is a warning %d", 3)
	func() {
		defer func() {
			_ = recover()
		}()
		Panicf("this is a panic %d", 4)
	}()
	SetLevel(DebugLevel)
}

func TestSetOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	SetOutputWriter(&buf)
	defer SetOutput([]string{"stderr"})

	SetLevel(WarnLevel)
	Infof("hidden %d", 1)
	Warnf("visible %d", 2)
	SetLevel(DebugLevel)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible 2") {
		t.Errorf("warn message not written: %q", out)
	}
	if GetLevel() != DebugLevel {
		t.Errorf("level should be restored")
	}
}
