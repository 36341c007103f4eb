package opmon

import (
	"sort"
	"sync"
	"time"

	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/gwlog"
)

var (
	operationAllocPool = sync.Pool{
		New: func() interface{} {
			return &Operation{}
		},
	}

	monitor = newMonitor()
)

func init() {
	if consts.OPMON_DUMP_INTERVAL > 0 {
		go func() {
			for {
				time.Sleep(consts.OPMON_DUMP_INTERVAL)
				Dump()
			}
		}()
	}
}

// OpInfo is the accumulated timing of one kind of operation
type OpInfo struct {
	Count         uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

type _Monitor struct {
	sync.Mutex
	opInfos map[string]*OpInfo
}

func newMonitor() *_Monitor {
	return &_Monitor{
		opInfos: map[string]*OpInfo{},
	}
}

func (monitor *_Monitor) record(opname string, duration time.Duration) {
	monitor.Lock()
	info := monitor.opInfos[opname]
	if info == nil {
		info = &OpInfo{}
		monitor.opInfos[opname] = info
	}
	info.Count += 1
	info.TotalDuration += duration
	if duration > info.MaxDuration {
		info.MaxDuration = duration
	}
	monitor.Unlock()
}

// Get returns a copy of the operation info recorded since the last Dump
func Get(opname string) (OpInfo, bool) {
	monitor.Lock()
	defer monitor.Unlock()
	info, ok := monitor.opInfos[opname]
	if !ok {
		return OpInfo{}, false
	}
	return *info, true
}

// Dump logs all operation infos and clears them
func Dump() {
	monitor.Lock()
	opInfos := monitor.opInfos
	monitor.opInfos = map[string]*OpInfo{}
	monitor.Unlock()

	names := make([]string, 0, len(opInfos))
	for name := range opInfos {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info := opInfos[name]
		gwlog.Infof("opmon: %-30sx%-10d AVG %-10s MAX %-10s", name, info.Count, info.TotalDuration/time.Duration(info.Count), info.MaxDuration)
	}
}

// Operation is the type of operation to be monitored
type Operation struct {
	name      string
	startTime time.Time
}

// StartOperation creates a new operation
func StartOperation(operationName string) *Operation {
	op := operationAllocPool.Get().(*Operation)
	op.name = operationName
	op.startTime = time.Now()
	return op
}

// Finish finishes the operation and records the duration of operation
func (op *Operation) Finish(warnThreshold time.Duration) {
	takeTime := time.Since(op.startTime)
	monitor.record(op.name, takeTime)
	if warnThreshold > 0 && takeTime >= warnThreshold {
		gwlog.Warnf("opmon: operation %s takes %s > %s", op.name, takeTime, warnThreshold)
	}
	operationAllocPool.Put(op)
}
