package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/vitrail/engine/core"
)

type AssetInfo struct {
	Path       string
	Type       ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory and keeps the index current by
// watching the filesystem. Loaders are registered per resource type;
// LoadAsset routes through them.
type AssetManager struct {
	baseDir string
	assets  map[string]AssetInfo
	loaders map[ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan fsnotify.Event
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[ResourceType]Loader),
		fsnotify: fsWatch,
		events:   make(chan fsnotify.Event),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir recursively and starts watching it for
// changes.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.baseDir = assetsDir

	go am.start()

	return am.addRecursive(assetsDir)
}

// RegisterLoader routes resources of the given type through the loader.
func (am *AssetManager) RegisterLoader(assetType ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Events exposes filesystem changes under the asset directory, for hot
// reloading. The channel closes on Shutdown.
func (am *AssetManager) Events() <-chan fsnotify.Event {
	return am.events
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

// LoadAsset loads the named asset, resolved relative to the asset
// directory, through the loader registered for its type.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*Resource, error) {
	path := filepath.Join(am.baseDir, name)

	am.mutex.RLock()
	asset, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	resource, err := loader.Load(path, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	am.mutex.Unlock()

	return resource, nil
}

// UnloadAsset releases a loaded resource through its loader.
func (am *AssetManager) UnloadAsset(resource *Resource) error {
	am.mutex.RLock()
	loader, exists := am.loaders[resource.Type]
	am.mutex.RUnlock()
	if !exists {
		return nil
	}
	return loader.Unload(resource)
}

// Shutdown stops the watcher and closes the event channels.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted entry, so drop it from both the index and
			// the watch list and let fsnotify sort out which one it was.
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}
			select {
			case am.events <- e:
			default:
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it passes on the way.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	wd = wd + "/" // add trailing slash
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			am.handleFileEvent(strings.TrimPrefix(walkPath, wd))
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := TypeOf(path)
	if assetType == ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}
