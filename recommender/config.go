package recommender

import (
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/docsync"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/engine"
)

// StoreConfig holds search cluster connection settings.
// Note: re-exported from the elastic subpackage for external use.
type StoreConfig = elastic.Config

// EngineConfig holds recommendation engine settings.
// Note: re-exported from the engine subpackage for external use.
type EngineConfig = engine.Config

// SyncConfig holds document sync settings.
// Note: re-exported from the docsync subpackage for external use.
type SyncConfig = docsync.Config

// SyncOptions narrows a full resync to one library.
type SyncOptions = docsync.ResyncOptions

// SyncStats summarizes one bulk resync run.
type SyncStats = elastic.BulkStats
