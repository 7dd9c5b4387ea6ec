package handlers

import (
	"encoding/json"
	"testing"

	"myinventory/domain"
	"myinventory/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInstancesResponse(t *testing.T) {
	req := pageRequest{SortKey: domain.SortKeyName, Direction: domain.Descending, Page: 2, Limit: 5}

	tests := []struct {
		name      string
		records   []domain.InstanceRecord
		wantLen   int
		wantFirst *InstanceInfo
	}{
		{
			name:    "nil",
			records: nil,
			wantLen: 0,
		},
		{
			name: "full record",
			records: []domain.InstanceRecord{{
				ID:         "i-1",
				Name:       helpers.Ptr("web"),
				Type:       helpers.Ptr("t3.micro"),
				State:      helpers.Ptr("running"),
				AZ:         helpers.Ptr("us-east-1a"),
				PublicIP:   helpers.Ptr("3.3.3.3"),
				PrivateIPs: []string{"10.0.0.1"},
			}},
			wantLen: 1,
			wantFirst: &InstanceInfo{
				Name:       helpers.Ptr("web"),
				Id:         "i-1",
				Type:       helpers.Ptr("t3.micro"),
				State:      helpers.Ptr("running"),
				Az:         helpers.Ptr("us-east-1a"),
				PublicIP:   helpers.Ptr("3.3.3.3"),
				PrivateIPs: []string{"10.0.0.1"},
			},
		},
		{
			name:      "absent fields",
			records:   []domain.InstanceRecord{{ID: "i-2"}},
			wantLen:   1,
			wantFirst: &InstanceInfo{Id: "i-2", PrivateIPs: []string{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toInstancesResponse(req, tt.records)
			assert.Equal(t, "name", got.SortKey)
			assert.Equal(t, "desc", got.Order)
			assert.Equal(t, 2, got.Page)
			assert.Equal(t, 5, got.Limit)
			require.NotNil(t, got.Instances)
			require.Len(t, got.Instances, tt.wantLen)
			if tt.wantFirst != nil {
				assert.Equal(t, *tt.wantFirst, got.Instances[0])
			}
		})
	}
}

func TestToInstancesResponse_JSONShape(t *testing.T) {
	got := toInstancesResponse(pageRequest{Page: 1, Limit: 10}, []domain.InstanceRecord{{ID: "i-1"}})
	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":"asc","page":1,"limit":10,"instances":[{"id":"i-1","privateIPs":[]}]}`, string(body))
}
