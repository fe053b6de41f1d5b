// Package registry holds the static service and addon tables. Everything here
// is built once at package init and is safe for concurrent reads.
package registry

import (
	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/samber/lo"
)

// ServiceDetail describes a debrid or cloud storage service.
type ServiceDetail struct {
	ID          string
	Name        string
	KnownNames  []string // short codes and display aliases used by upstream addons
	Credentials []string // credential fields the service needs
}

// AddonDetail describes an upstream addon and the services it can be scoped to.
type AddonDetail struct {
	ID                string
	Name              string
	SupportedServices []string
}

var serviceDetails = []ServiceDetail{
	{
		ID:          constants.ServiceRealDebrid,
		Name:        "Real-Debrid",
		KnownNames:  []string{"RD", "Real Debrid", "RealDebrid", "Real-Debrid"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServiceAllDebrid,
		Name:        "AllDebrid",
		KnownNames:  []string{"AD", "All Debrid", "AllDebrid", "All-Debrid"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServicePremiumize,
		Name:        "Premiumize",
		KnownNames:  []string{"PM", "Premiumize"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServiceDebridLink,
		Name:        "Debrid-Link",
		KnownNames:  []string{"DL", "Debrid Link", "DebridLink", "Debrid-Link"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServiceEasyDebrid,
		Name:        "EasyDebrid",
		KnownNames:  []string{"ED", "EasyDebrid", "Easy Debrid"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServiceTorbox,
		Name:        "TorBox",
		KnownNames:  []string{"TB", "TorBox", "Torbox"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServiceOffcloud,
		Name:        "Offcloud",
		KnownNames:  []string{"OC", "Offcloud"},
		Credentials: []string{"apiKey"},
	},
	{
		ID:          constants.ServicePutio,
		Name:        "put.io",
		KnownNames:  []string{"PO", "Putio", "put.io"},
		Credentials: []string{"clientId", "token"},
	},
}

var addonDetails = []AddonDetail{
	{
		ID:   constants.ProviderTorrentio,
		Name: constants.TorrentioDisplayName,
		SupportedServices: []string{
			constants.ServiceRealDebrid,
			constants.ServiceAllDebrid,
			constants.ServicePremiumize,
			constants.ServiceDebridLink,
			constants.ServiceEasyDebrid,
			constants.ServiceTorbox,
			constants.ServiceOffcloud,
			constants.ServicePutio,
		},
	},
}

// knownNameIndex maps every alias to its canonical service id.
var knownNameIndex = buildKnownNameIndex(serviceDetails)

func buildKnownNameIndex(details []ServiceDetail) map[string]string {
	index := make(map[string]string)
	for _, service := range details {
		for _, name := range service.KnownNames {
			if _, exists := index[name]; !exists {
				index[name] = service.ID
			}
		}
	}
	return index
}

// ResolveServiceID returns the canonical id for an upstream short code or alias.
// Matching is exact, aliases are case sensitive.
func ResolveServiceID(code string) (string, bool) {
	id, ok := knownNameIndex[code]
	return id, ok
}

// Service returns the detail entry for a canonical service id.
func Service(id string) (ServiceDetail, bool) {
	return lo.Find(serviceDetails, func(s ServiceDetail) bool {
		return s.ID == id
	})
}

// Services returns a copy of all known services.
func Services() []ServiceDetail {
	return append([]ServiceDetail(nil), serviceDetails...)
}

// SupportedServices returns the service ids an addon can be scoped to, or nil
// for an unknown addon.
func SupportedServices(addonID string) []string {
	addon, ok := lo.Find(addonDetails, func(a AddonDetail) bool {
		return a.ID == addonID
	})
	if !ok {
		return nil
	}
	return append([]string(nil), addon.SupportedServices...)
}
