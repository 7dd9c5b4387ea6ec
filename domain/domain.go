package domain

import "slices"

// InstanceRecord represents one compute instance as served by myinventory.
// Optional fields are nil when upstream data is incomplete; absent values sort last.
type InstanceRecord struct {
	ID         string   `json:"id" yaml:"id"`                                     // instance identifier, unique within a region
	Name       *string  `json:"name,omitempty" yaml:"name,omitempty"`             // value of the "Name" tag
	Type       *string  `json:"type,omitempty" yaml:"type,omitempty"`             // instance type (e.g. t3.micro)
	State      *string  `json:"state,omitempty" yaml:"state,omitempty"`           // lifecycle state (running, stopped, ...)
	AZ         *string  `json:"az,omitempty" yaml:"az,omitempty"`                 // availability zone
	PublicIP   *string  `json:"publicIP,omitempty" yaml:"publicIP,omitempty"`     // public IPv4 address
	PrivateIPs []string `json:"privateIPs,omitempty" yaml:"privateIPs,omitempty"` // private addresses of all network interfaces
}

// Clone returns a copy of r that shares no mutable memory with r.
func (r InstanceRecord) Clone() InstanceRecord {
	out := r
	out.Name = clonePtr(r.Name)
	out.Type = clonePtr(r.Type)
	out.State = clonePtr(r.State)
	out.AZ = clonePtr(r.AZ)
	out.PublicIP = clonePtr(r.PublicIP)
	out.PrivateIPs = slices.Clone(r.PrivateIPs)
	return out
}

// InstanceStatus is a status-only partial record (instance id and its current state).
type InstanceStatus struct {
	ID    string
	State *string
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
