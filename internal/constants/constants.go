package constants

import "time"

// StorageKeys are the fixed keys the content repository persists under. One
// key per content category plus one for the remote sync identifier.
var StorageKeys = struct {
	Profile  string
	Projects string
	Skills   string
	About    string
	SyncID   string
}{
	Profile:  "folio:profile",
	Projects: "folio:projects",
	Skills:   "folio:skills",
	About:    "folio:about",
	SyncID:   "folio:sync-id",
}

var HTTPConfig = struct {
	ClientTimeout   time.Duration
	UploadTimeout   time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	MaxImportBytes  int64
}{
	ClientTimeout:   10 * time.Second,
	UploadTimeout:   30 * time.Second, // image payloads are larger
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    30 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxUploadBytes:  16 << 20,
	MaxImportBytes:  4 << 20,
}

var StoreConfig = struct {
	LoadTimeout      time.Duration
	LoadConcurrency  int
	RedisDialTimeout time.Duration
	RedisOpTimeout   time.Duration
}{
	LoadTimeout:      10 * time.Second,
	LoadConcurrency:  4, // one goroutine per content category
	RedisDialTimeout: 5 * time.Second,
	RedisOpTimeout:   3 * time.Second,
}

var WebSocketConfig = struct {
	WriteDeadline  time.Duration
	SendBufferSize int
}{
	WriteDeadline:  5 * time.Second,
	SendBufferSize: 8,
}

// ShareFragment is the URL fragment prefix identifying a remote content
// snapshot, e.g. "#live=<id>".
const ShareFragment = "#live="

// PlaceholderImage is rendered for projects whose image list is empty.
const PlaceholderImage = "https://picsum.photos/seed/placeholder/600/400"

var StringLimits = struct {
	LogPayload int
}{
	LogPayload: 200,
}
