package config

// DefaultListID is the members list checked when HUBSPOT_LIST_ID is not set.
const DefaultListID = "1"

type CrmConfig interface {
	GetCrmAccessToken() string
	GetCrmListID() string
	GetCrmBaseURL() string
}

type Crm struct{}

var _ CrmConfig = Crm{}

func (Crm) GetCrmAccessToken() string {
	return GetEnv("HUBSPOT_ACCESS_TOKEN", "")
}

func (Crm) GetCrmListID() string {
	return GetEnv("HUBSPOT_LIST_ID", DefaultListID)
}

func (Crm) GetCrmBaseURL() string {
	return GetEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com")
}
