package jobs

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/embermatch/api/internal/bank"
)

// BankRefresher polls the question bank file and hot-reloads the catalog
// when the file's modification time changes. A file that fails validation
// is logged and skipped; the active bank keeps serving.
type BankRefresher struct {
	catalog  *bank.Catalog
	path     string
	interval time.Duration
	lastMod  time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewBankRefresher creates a new bank refresher job
func NewBankRefresher(catalog *bank.Catalog, path string, interval time.Duration) *BankRefresher {
	if interval == 0 {
		interval = 1 * time.Minute // Default check every minute
	}
	return &BankRefresher{
		catalog:  catalog,
		path:     path,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching the bank file
func (r *BankRefresher) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	if info, err := os.Stat(r.path); err == nil {
		r.lastMod = info.ModTime()
	}

	r.wg.Add(1)
	go r.run()
	slog.Info("bank refresher started",
		slog.String("path", r.path),
		slog.Duration("interval", r.interval),
	)
}

// Stop gracefully stops the refresher
func (r *BankRefresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
	slog.Info("bank refresher stopped")
}

// run is the main loop
func (r *BankRefresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.checkAndReload()
		case <-r.stopCh:
			return
		}
	}
}

// checkAndReload reloads the catalog when the file changed since the
// last successful check. The modification time updates even when the
// reload is rejected, so a broken file is reported once, not every tick.
func (r *BankRefresher) checkAndReload() {
	info, err := os.Stat(r.path)
	if err != nil {
		slog.Warn("bank refresher stat failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
		return
	}
	if !info.ModTime().After(r.lastMod) {
		return
	}
	r.lastMod = info.ModTime()

	defs, err := bank.ReadDefinitions(r.path)
	if err != nil {
		slog.Error("bank refresher read failed",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := r.catalog.Reload(defs); err != nil {
		slog.Error("bank refresher rejected file, keeping active bank",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.Info("question bank reloaded",
		slog.String("path", r.path),
		slog.Int("questions", r.catalog.Current().Len()),
	)
}
