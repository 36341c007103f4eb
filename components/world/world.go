package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/mxosim/reality/engine/binutil"
	"github.com/mxosim/reality/engine/config"
	"github.com/mxosim/reality/engine/game"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/post"
	"github.com/mxosim/reality/engine/storage"
)

var (
	args struct {
		configFile      string
		logLevel        string
		runInDaemonMode bool
	}
	worldService *WorldService
	signalChan   = make(chan os.Signal, 1)
)

func parseArgs() {
	flag.StringVar(&args.configFile, "configfile", "", "set config file path")
	flag.StringVar(&args.logLevel, "log", "", "set log level, will override log level in config")
	flag.BoolVar(&args.runInDaemonMode, "d", false, "run in daemon mode")
	flag.Parse()
}

func main() {
	parseArgs()

	if args.runInDaemonMode {
		daemoncontext := binutil.Daemonize()
		defer daemoncontext.Release()
	}

	if args.configFile != "" {
		config.SetConfigFile(args.configFile)
	}

	worldConfig := config.GetWorld()
	if worldConfig.GoMaxProcs > 0 {
		gwlog.Infof("SET GOMAXPROCS = %d", worldConfig.GoMaxProcs)
		runtime.GOMAXPROCS(worldConfig.GoMaxProcs)
	}
	logLevel := args.logLevel
	if logLevel == "" {
		logLevel = worldConfig.LogLevel
	}
	binutil.SetupGWLog("world", logLevel, worldConfig.LogFile, worldConfig.LogStderr)
	fmt.Fprintf(gwlog.GetOutput(), "Read world config: \n%s\n", config.DumpPretty(worldConfig))

	storageConfig := config.GetStorage()
	store, err := storage.Open(storageConfig)
	if err != nil {
		gwlog.Fatalf("open %s storage failed: %v", storageConfig.Type, err)
	}
	binutil.SetupHTTPServer(worldConfig.HTTPIp, worldConfig.HTTPPort)

	worldService = newWorldService(worldConfig, game.NewServer(worldConfig, store), store)
	setupSignals()
	worldService.run()
	gwlog.Infof("World terminated gracefully.")
}

func setupSignals() {
	gwlog.Infof("Setup signals ...")
	signal.Ignore(syscall.SIGPIPE, syscall.SIGHUP)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for {
			sig := <-signalChan
			if sig == syscall.SIGINT || sig == syscall.SIGTERM {
				gwlog.Infof("Terminating world service ...")
				post.Post(func() {
					worldService.terminate()
				})
			} else {
				gwlog.Errorf("unexpected signal: %s", sig)
			}
		}
	}()
}
