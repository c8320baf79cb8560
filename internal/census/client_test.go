package census

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientURL(t *testing.T) {
	c := NewClient(Config{
		BaseURL: "https://api.census.gov/data",
		Year:    2022,
		Key:     "secret",
	})

	assert.Equal(t,
		"https://api.census.gov/data/2022/acs/acs5?get=NAME,B01003_001E&for=county:*&key=secret",
		c.URL(),
	)
}

func TestClientURL_EmptyKey(t *testing.T) {
	// An empty credential is sent as-is; the API rejects it server-side.
	c := NewClient(Config{BaseURL: "https://api.census.gov/data", Year: 2022})
	assert.Equal(t,
		"https://api.census.gov/data/2022/acs/acs5?get=NAME,B01003_001E&for=county:*&key=",
		c.URL(),
	)
}

func TestFetchCountyPopulations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NAME,B01003_001E", r.URL.Query().Get("get"))
		assert.Equal(t, "county:*", r.URL.Query().Get("for"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `[["NAME","B01003_001E","state","county"],["Alameda County, California","1600000","06","001"]]`)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Year: 2022, Key: "test-key"})
	table, err := c.FetchCountyPopulations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	pop, ok := table.Population("06001")
	assert.True(t, ok)
	assert.Equal(t, 1600000, pop)
}

func TestFetchCountyPopulations_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "Invalid Key, See https://api.census.gov/data/key_signup.html")
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Year: 2022, Key: "bad"})
	_, err := c.FetchCountyPopulations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "Invalid Key")
}

func TestFetchCountyPopulations_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Year: 2022, Key: "k"})
	_, err := c.FetchCountyPopulations(context.Background())
	assert.Error(t, err)
}

func TestFetchCountyPopulations_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[["NAME","B01003_001E","state","county"]]`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Config{BaseURL: srv.URL, Year: 2022, Key: "k"})
	_, err := c.FetchCountyPopulations(ctx)
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	short := []byte("short body")
	assert.Equal(t, short, preview(short))

	long := make([]byte, bodyPreviewBytes*2)
	assert.Len(t, preview(long), bodyPreviewBytes)
}
