package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageFirstOfMany(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books?genre=fantasy", nil)

	p := NewPage(req, 1, 10, 25, []int{})

	assert.Equal(t, 25, p.Count)
	assert.Nil(t, p.Previous)
	require.NotNil(t, p.Next)
	assert.Equal(t, "http://example.com/books?genre=fantasy&page=2", *p.Next)
}

func TestNewPageMiddle(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books?page=2", nil)

	p := NewPage(req, 2, 10, 25, []int{})

	require.NotNil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://example.com/books?page=3", *p.Next)
	assert.Equal(t, "http://example.com/books?page=1", *p.Previous)
}

func TestNewPageLast(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books?page=3", nil)

	p := NewPage(req, 3, 10, 25, []int{})

	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
}

func TestNewPageSinglePage(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books", nil)

	p := NewPage(req, 1, 10, 3, []int{})

	assert.Nil(t, p.Next)
	assert.Nil(t, p.Previous)
}

func TestNewPageEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books", nil)

	p := NewPage(req, 1, 10, 0, []int{})

	assert.Equal(t, 0, p.Count)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Previous)
}

func TestNewPageBeyondLastClampsPrevious(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books?page=7", nil)

	p := NewPage(req, 7, 10, 25, []int{})

	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://example.com/books?page=3", *p.Previous)
}

func TestNewPageBeyondLastOfEmptyCollection(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/books?page=4", nil)

	p := NewPage(req, 4, 10, 0, []int{})

	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://example.com/books?page=1", *p.Previous)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 40, Offset(5, 10))
	assert.Equal(t, 0, Offset(0, 10))
}
