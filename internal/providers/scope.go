package providers

import (
	"strings"
	"sync"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/samber/lo"
)

// ScopeSerializer renders one service's credentials as a "service=credential" pair.
type ScopeSerializer func(service models.ServiceConfig) string

// ScopeSeparator joins pairs in a combined scope.
const ScopeSeparator = "|"

var (
	scopeMu          sync.RWMutex
	scopeSerializers = map[string]ScopeSerializer{
		constants.ServicePutio: func(s models.ServiceConfig) string {
			return s.ID + "=" + s.Credentials["clientId"] + "@" + s.Credentials["token"]
		},
	}
)

// DefaultScopeSerializer renders "id=apiKey".
func DefaultScopeSerializer(s models.ServiceConfig) string {
	return s.ID + "=" + s.Credentials["apiKey"]
}

// RegisterScopeSerializer installs a serializer for a service id, replacing
// any existing one.
func RegisterScopeSerializer(serviceID string, fn ScopeSerializer) {
	scopeMu.Lock()
	defer scopeMu.Unlock()
	scopeSerializers[serviceID] = fn
}

// SerializeService renders a single service pair. Missing credential keys
// serialize as empty strings.
func SerializeService(service models.ServiceConfig) string {
	scopeMu.RLock()
	fn, ok := scopeSerializers[service.ID]
	scopeMu.RUnlock()
	if !ok {
		fn = DefaultScopeSerializer
	}
	return fn(service)
}

// SerializeScope renders services as a combined scope string, in order.
func SerializeScope(services []models.ServiceConfig) string {
	pairs := lo.Map(services, func(s models.ServiceConfig, _ int) string {
		return SerializeService(s)
	})
	return strings.Join(pairs, ScopeSeparator)
}
