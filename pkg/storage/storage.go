// Package storage stores uploaded blobs (payment proofs) and hands back a
// resolvable URL to record on the order.
//
// Two drivers are available:
//   - "local": local filesystem (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	storage.Connect()
//	url, err := storage.Put("proofs/order-17.jpg", data)
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/Wege0921/prodev-be-ecommerce/config"
)

// Disk is the blob-store driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	disks["local"] = newLocalDisk()

	// Boot the S3 disk only when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			fmt.Printf("storage/s3: %v (disk disabled)\n", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, used by tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	if name == "" {
		name = "local"
	}
	return Use(name)
}

// Put writes content to path on the default disk and returns its URL.
func Put(path string, content []byte) (string, error) {
	d := defaultD()
	if err := d.Put(path, content); err != nil {
		return "", err
	}
	return d.URL(path), nil
}

// PutStream writes from r to path on the default disk and returns its URL.
func PutStream(path string, r io.Reader) (string, error) {
	d := defaultD()
	if err := d.PutStream(path, r); err != nil {
		return "", err
	}
	return d.URL(path), nil
}

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// URL returns the public URL of path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }
