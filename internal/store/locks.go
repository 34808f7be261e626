package store

import "sync"

// writeLocks maps a backend location to the mutex serializing its
// read-modify-write cycles.
var writeLocks sync.Map // map[string]*sync.Mutex

func lockFor(location string) *sync.Mutex {
	if v, ok := writeLocks.Load(location); ok {
		return v.(*sync.Mutex)
	}
	v, _ := writeLocks.LoadOrStore(location, &sync.Mutex{})
	return v.(*sync.Mutex)
}
