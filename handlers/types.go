package handlers

// InstanceInfo is one instance in InstancesResponse. Absent fields are omitted.
type InstanceInfo struct {
	Name       *string  `json:"name,omitempty"`
	Id         string   `json:"id"`
	Type       *string  `json:"type,omitempty"`
	State      *string  `json:"state,omitempty"`
	Az         *string  `json:"az,omitempty"`
	PublicIP   *string  `json:"publicIP,omitempty"`
	PrivateIPs []string `json:"privateIPs"`
}

// InstancesResponse is the body of GET /v1/regions/{region}/instances.
type InstancesResponse struct {
	SortKey   string         `json:"sortKey,omitempty"`
	Order     string         `json:"order"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	Instances []InstanceInfo `json:"instances"`
}

// RegionsResponse is the body of GET /v1/regions.
type RegionsResponse struct {
	Regions []string `json:"regions"`
}
