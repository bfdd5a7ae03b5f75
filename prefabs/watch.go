package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before its change is
// reported. Editors often write a file several times per save.
const settleDelay = 100 * time.Millisecond

// ChangeKind tells the runner which live state a changed file feeds.
type ChangeKind int

const (
	// ChangePrefab is a yaml prefab: player tuning, projectiles, level pieces.
	ChangePrefab ChangeKind = iota
	// ChangeScript is a tengo interactable script.
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "prefab"
}

// Change is one settled edit to a prefab or script file.
type Change struct {
	// Name is the file name as prefabs are addressed, e.g. "player.yaml".
	Name    string
	Path    string
	Kind    ChangeKind
	Removed bool
}

// Classify maps a path to the kind of file it is. Hidden files and
// anything that is neither yaml nor tengo are ignored.
func Classify(path string) (ChangeKind, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return 0, false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return ChangePrefab, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}

// Watcher reports settled changes to prefab and script files.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timers := make(map[string]*time.Timer)
	settled := make(chan string, 16)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := newChange(event)
			if !ok {
				continue
			}
			// the latest operation on a file wins
			pending[event.Name] = change
			if t, ok := timers[event.Name]; ok {
				t.Reset(settleDelay)
				continue
			}
			path := event.Name
			timers[path] = time.AfterFunc(settleDelay, func() {
				select {
				case settled <- path:
				case <-w.closeCh:
				}
			})
		case path := <-settled:
			change, ok := pending[path]
			delete(pending, path)
			delete(timers, path)
			if !ok {
				continue
			}
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func newChange(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	kind, ok := Classify(event.Name)
	if !ok {
		return Change{}, false
	}
	return Change{
		Name:    filepath.Base(event.Name),
		Path:    event.Name,
		Kind:    kind,
		Removed: event.Op&(fsnotify.Rename|fsnotify.Remove) != 0,
	}, true
}
