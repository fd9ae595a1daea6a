package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationDefaults(t *testing.T) {
	p := PaginatedRequest{}
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 0, p.Offset())
}

func TestPaginationOffsets(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 20}
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())
}

func TestPaginationCap(t *testing.T) {
	p := PaginatedRequest{Page: 2, PerPage: 500}
	assert.Equal(t, 100, p.Limit())
	assert.Equal(t, 100, p.Offset())
}
