package pipeline

// Event reports pipeline progress. Index and Total are set for per-file
// events; Index is zero-based.
type Event struct {
	RunID   string
	State   State
	Index   int
	Total   int
	Path    string
	Done    bool
	Message string
}

// Reporter receives progress events. Reporters never influence control flow.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }
