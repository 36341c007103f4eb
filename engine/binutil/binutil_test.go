package binutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mxosim/reality/engine/gwlog"
)

func TestSetupGWLog(t *testing.T) {
	dir, err := ioutil.TempDir("", "reality_binutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	logFile := filepath.Join(dir, "world.log")
	SetupGWLog("binutil_test", "info", logFile, false)
	defer gwlog.SetOutput([]string{"stderr"})

	gwlog.Debugf("not written")
	gwlog.Infof("written to file")

	data, err := ioutil.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content: %q", data)
	}
	if strings.Contains(string(data), "not written") {
		t.Errorf("debug log should be filtered")
	}
	gwlog.SetLevel(gwlog.DebugLevel)
}
