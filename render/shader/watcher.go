package shader

import (
	"fmt"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/fsnotify/fsnotify"
	"path/filepath"
)

// Watcher reports program names whose shader files changed in a directory.
// It only delivers names; reloading belongs on the GL goroutine.
type Watcher struct {
	mWatcher *fsnotify.Watcher
	mLogger  *glog.Logger
	mNames   chan string
	mDone    chan struct{}
}

func NewWatcher(dir string, logger *glog.Logger) (*Watcher, error) {

	var xErr error

	if logger == nil {
		logger = glog.Default()
	}

	fsWatcher, fsErr := fsnotify.NewWatcher()
	if fsErr != nil {
		xErr = fmt.Errorf("fsnotify.NewWatcher error:[%v]", fsErr.Error())
		return nil, xErr
	}

	addErr := fsWatcher.Add(dir)
	if addErr != nil {
		fsWatcher.Close()
		xErr = fmt.Errorf("watch shader dir=[%v] error:[%v]", dir, addErr.Error())
		return nil, xErr
	}

	pThis := &Watcher{
		mWatcher: fsWatcher,
		mLogger:  logger,
		mNames:   make(chan string, 64),
		mDone:    make(chan struct{}),
	}

	go pThis.run()

	return pThis, xErr
}

// Names is closed after Close returns.
func (w *Watcher) Names() <-chan string {
	return w.mNames
}

func (w *Watcher) Close() error {
	xErr := w.mWatcher.Close()
	<-w.mDone
	return xErr
}

func (w *Watcher) run() {

	defer close(w.mDone)
	defer close(w.mNames)

	for {
		select {
		case event, ok := <-w.mWatcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			name, isShader := ProgramNameFromFile(filepath.Base(event.Name))
			if !isShader {
				continue
			}

			select {
			case w.mNames <- name:
			default:
				w.mLogger.WarnF("Watcher queue full, dropped shader=[%v]", name)
			}

		case watchErr, ok := <-w.mWatcher.Errors:
			if !ok {
				return
			}
			w.mLogger.ErrorF("Watcher error:[%v]", watchErr.Error())
		}
	}
}
