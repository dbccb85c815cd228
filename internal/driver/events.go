package driver

// Stage names the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageCache
	StageRead
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageCache:
		return "cache"
	case StageRead:
		return "read"
	default:
		return "unknown"
	}
}

// Status reports progress within a stage.
type Status uint8

const (
	StatusQueued Status = iota + 1
	StatusWorking
	StatusDone
	StatusError
)

// Event describes progress of one file. File is empty for events about the
// run as a whole.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Forms  int
}

// Observer receives events emitted during ParseDir. It is called from worker
// goroutines and must be safe for concurrent use.
type Observer func(Event)

func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
