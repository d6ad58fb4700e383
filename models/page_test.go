package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	testCases := []struct {
		name       string
		req        PageRequest
		total      int64
		wantPages  int
		wantFirst  bool
		wantLast   bool
		wantNumber int
	}{
		{name: "empty table", req: PageRequest{Number: 0, Size: 5}, total: 0, wantPages: 0, wantFirst: true, wantLast: true},
		{name: "exact fit", req: PageRequest{Number: 1, Size: 5}, total: 10, wantPages: 2, wantLast: true, wantNumber: 1},
		{name: "middle page", req: PageRequest{Number: 1, Size: 5}, total: 12, wantPages: 3, wantNumber: 1},
		{name: "negative page becomes first", req: PageRequest{Number: -3, Size: 5}, total: 12, wantPages: 3, wantFirst: true},
		{name: "missing size uses default", req: PageRequest{Number: 0}, total: 6, wantPages: 2, wantFirst: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := NewPage[Category](nil, tc.req, tc.total)

			assert.NotNil(t, page.Content)
			assert.Equal(t, tc.wantPages, page.TotalPages)
			assert.Equal(t, tc.wantFirst, page.First)
			assert.Equal(t, tc.wantLast, page.Last)
			assert.Equal(t, tc.wantNumber, page.Number)
			assert.Equal(t, tc.total, page.TotalElements)
		})
	}
}
