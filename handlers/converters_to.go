package handlers

import (
	"slices"

	"myinventory/domain"
)

// toInstancesResponse converts one page of records to the API response.
func toInstancesResponse(req pageRequest, records []domain.InstanceRecord) InstancesResponse {
	out := make([]InstanceInfo, 0, len(records))
	for _, r := range records {
		privateIPs := slices.Clone(r.PrivateIPs)
		if privateIPs == nil {
			privateIPs = []string{}
		}
		out = append(out, InstanceInfo{
			Name:       r.Name,
			Id:         r.ID,
			Type:       r.Type,
			State:      r.State,
			Az:         r.AZ,
			PublicIP:   r.PublicIP,
			PrivateIPs: privateIPs,
		})
	}
	return InstancesResponse{
		SortKey:   string(req.SortKey),
		Order:     req.Direction.String(),
		Page:      req.Page,
		Limit:     req.Limit,
		Instances: out,
	}
}
