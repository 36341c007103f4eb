package config

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-ini/ini"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/pkg/errors"
)

const (
	_DEFAULT_CONFIG_FILE = "reality.ini"
	_DEFAULT_HTTP_IP     = "127.0.0.1"
	_DEFAULT_LOG_LEVEL   = "debug"
	_DEFAULT_STORAGE_DB  = "reality"
	_DEFAULT_CHAT_PREFIX = "SOE"
	_DEFAULT_SKY         = "Massive"
)

var (
	configFilePath = _DEFAULT_CONFIG_FILE
	realityConfig  *RealityConfig
	configLock     sync.Mutex
)

// WorldConfig defines fields of the world server config
type WorldConfig struct {
	LogFile            string
	LogStderr          bool
	LogLevel           string
	HTTPIp             string
	HTTPPort           int
	GoMaxProcs         int
	SaveInterval       time.Duration
	TickInterval       time.Duration
	ChatPrefix         string
	Sky                string
	RPCWarnThreshold   time.Duration
	DumpUnhandled      bool
	DefaultDistrict    int
	WelcomeMessage     string
	CommandQueueLength int
}

// StorageConfig defines fields of storage config
type StorageConfig struct {
	Type      string // Type of storage (filesystem, redis, mysql)
	Directory string // Directory of filesystem storage (filesystem)
	Url       string // Connection URL (redis, mysql)
	DB        string // Database number of redis, database name of mysql
}

// RealityConfig defines the total config file structure
type RealityConfig struct {
	World   WorldConfig
	Storage StorageConfig
}

// SetConfigFile sets the config file path (reality.ini by default)
func SetConfigFile(f string) {
	configFilePath = f
}

// GetConfigDir returns the directory of reality.ini
func GetConfigDir() string {
	dir, _ := path.Split(configFilePath)
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	return configFilePath
}

// Get returns the total config
func Get() *RealityConfig {
	configLock.Lock()
	defer configLock.Unlock()
	if realityConfig == nil {
		realityConfig = readRealityConfig()
	}
	return realityConfig
}

// Reload forces the world server to reload the whole config
func Reload() *RealityConfig {
	configLock.Lock()
	realityConfig = nil
	configLock.Unlock()

	return Get()
}

// GetWorld returns the world server config
func GetWorld() *WorldConfig {
	return &Get().World
}

// GetStorage returns the storage config
func GetStorage() *StorageConfig {
	return &Get().Storage
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func readRealityConfig() *RealityConfig {
	config := RealityConfig{}
	gwlog.Infof("Using config file: %s", configFilePath)
	iniFile, err := ini.Load(configFilePath)
	checkConfigError(err, "")

	setWorldDefaults(&config.World)
	setStorageDefaults(&config.Storage)

	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" {
			continue
		}

		if secName == "world" {
			readWorldConfig(sec, &config.World)
		} else if secName == "storage" {
			readStorageConfig(sec, &config.Storage)
		} else {
			gwlog.Errorf("unknown section: %s", secName)
		}
	}

	validateStorageConfig(&config.Storage)
	return &config
}

func setWorldDefaults(wc *WorldConfig) {
	wc.LogFile = "world.log"
	wc.LogStderr = true
	wc.LogLevel = _DEFAULT_LOG_LEVEL
	wc.HTTPIp = _DEFAULT_HTTP_IP
	wc.SaveInterval = consts.DEFAULT_SAVE_INTERVAL
	wc.TickInterval = consts.WORLD_SERVICE_TICK_INTERVAL
	wc.ChatPrefix = _DEFAULT_CHAT_PREFIX
	wc.Sky = _DEFAULT_SKY
	wc.RPCWarnThreshold = consts.RPC_WARN_THRESHOLD
	wc.WelcomeMessage = "Welcome to the Matrix"
	wc.CommandQueueLength = consts.WORLD_SERVICE_COMMAND_QUEUE_SIZE
}

func readWorldConfig(sec *ini.Section, wc *WorldConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_file" {
			wc.LogFile = key.MustString(wc.LogFile)
		} else if name == "log_stderr" {
			wc.LogStderr = key.MustBool(wc.LogStderr)
		} else if name == "log_level" {
			wc.LogLevel = key.MustString(wc.LogLevel)
		} else if name == "http_ip" {
			wc.HTTPIp = key.MustString(wc.HTTPIp)
		} else if name == "http_port" {
			wc.HTTPPort = key.MustInt(wc.HTTPPort)
		} else if name == "gomaxprocs" {
			wc.GoMaxProcs = key.MustInt(wc.GoMaxProcs)
		} else if name == "save_interval" {
			wc.SaveInterval = time.Second * time.Duration(key.MustInt(int(wc.SaveInterval/time.Second)))
		} else if name == "tick_interval_ms" {
			wc.TickInterval = time.Millisecond * time.Duration(key.MustInt(int(wc.TickInterval/time.Millisecond)))
		} else if name == "chat_prefix" {
			wc.ChatPrefix = key.MustString(wc.ChatPrefix)
		} else if name == "sky" {
			wc.Sky = key.MustString(wc.Sky)
		} else if name == "rpc_warn_threshold_ms" {
			wc.RPCWarnThreshold = time.Millisecond * time.Duration(key.MustInt(int(wc.RPCWarnThreshold/time.Millisecond)))
		} else if name == "dump_unhandled" {
			wc.DumpUnhandled = key.MustBool(wc.DumpUnhandled)
		} else if name == "default_district" {
			wc.DefaultDistrict = key.MustInt(wc.DefaultDistrict)
		} else if name == "welcome_message" {
			wc.WelcomeMessage = key.MustString(wc.WelcomeMessage)
		} else if name == "command_queue_length" {
			wc.CommandQueueLength = key.MustInt(wc.CommandQueueLength)
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}

	if wc.TickInterval <= 0 {
		wc.TickInterval = consts.WORLD_SERVICE_TICK_INTERVAL
	}
	if wc.DefaultDistrict < 0 || wc.DefaultDistrict > consts.MAX_DISTRICT {
		gwlog.Panicf("default_district must be in [0, %d]: %d", consts.MAX_DISTRICT, wc.DefaultDistrict)
	}
}

func setStorageDefaults(config *StorageConfig) {
	config.Type = "filesystem"
	config.Directory = "_character_storage"
	config.DB = _DEFAULT_STORAGE_DB
	config.Url = ""
}

func readStorageConfig(sec *ini.Section, config *StorageConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "type" {
			config.Type = key.MustString(config.Type)
		} else if name == "directory" {
			config.Directory = key.MustString(config.Directory)
		} else if name == "url" {
			config.Url = key.MustString(config.Url)
		} else if name == "db" {
			config.DB = key.MustString(config.DB)
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}

	if config.Type == "redis" {
		if _, err := strconv.Atoi(config.DB); err != nil {
			config.DB = "0"
		}
	}
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		gwlog.Panicf("read config error: %s", msg)
	}
}

func validateStorageConfig(config *StorageConfig) {
	if config.Type == "filesystem" {
		if config.Directory == "" {
			gwlog.Panicf("directory is not set in %s storage config", config.Type)
		}
	} else if config.Type == "redis" {
		if config.Url == "" {
			gwlog.Panicf("redis host is not set")
		}
		if _, err := strconv.Atoi(config.DB); err != nil {
			gwlog.Panic(errors.Wrap(err, "redis db must be integer"))
		}
	} else if config.Type == "mysql" {
		if config.Url == "" {
			fmt.Fprintf(gwlog.GetOutput(), "%s\n", DumpPretty(config))
			gwlog.Panicf("invalid %s storage config above: url is not set", config.Type)
		}
	} else {
		gwlog.Panicf("unknown storage type: %s", config.Type)
	}
}
