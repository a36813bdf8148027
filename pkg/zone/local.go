package zone

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/logging"
)

// ErrLocalUnset is returned by LocalProvider before SetLocal was called.
var ErrLocalUnset = errors.New("local zone not configured")

var (
	localMu sync.RWMutex
	local   Provider
)

// SetLocal installs p as the process-wide local zone. A nil p clears it.
func SetLocal(p Provider) {
	localMu.Lock()
	local = p
	localMu.Unlock()

	if p == nil {
		logging.Named("zone").Debug("local zone cleared")
		return
	}
	logging.Named("zone").Debug("local zone set", zap.String(logging.FieldZone, p.String()))
}

// LocalProvider returns the zone installed with SetLocal.
func LocalProvider() (Provider, error) {
	localMu.RLock()
	defer localMu.RUnlock()
	if local == nil {
		return nil, errors.WithHint(ErrLocalUnset, "call zone.SetLocal, for example with zone.SystemLocal()")
	}
	return local, nil
}

// SystemLocal returns the operating system's zone as a Location. It does
// not install it.
func SystemLocal() Location {
	return FromTimeLocation(time.Local)
}
