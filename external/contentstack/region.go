package contentstack

import "strings"

// Hosts are the API base URLs for one Contentstack data region.
type Hosts struct {
	Delivery   string
	Management string
}

var regionHosts = map[string]Hosts{
	"us": {
		Delivery:   "https://cdn.contentstack.io",
		Management: "https://api.contentstack.io",
	},
	"eu": {
		Delivery:   "https://eu-cdn.contentstack.com",
		Management: "https://eu-api.contentstack.com",
	},
	"azure-na": {
		Delivery:   "https://azure-na-cdn.contentstack.com",
		Management: "https://azure-na-api.contentstack.com",
	},
	"azure-eu": {
		Delivery:   "https://azure-eu-cdn.contentstack.com",
		Management: "https://azure-eu-api.contentstack.com",
	},
	"gcp-na": {
		Delivery:   "https://gcp-na-cdn.contentstack.com",
		Management: "https://gcp-na-api.contentstack.com",
	},
}

// RegionHosts resolves a region name; unknown names resolve to us.
func RegionHosts(region string) Hosts {
	if hosts, ok := regionHosts[strings.ToLower(strings.TrimSpace(region))]; ok {
		return hosts
	}
	return regionHosts["us"]
}
