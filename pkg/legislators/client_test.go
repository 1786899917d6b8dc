package legislators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {"id":{"bioguide":"P000145"},"name":{"first":"Alex","last":"Padilla"},
   "terms":[{"type":"sen","state":"CA","party":"Democrat","url":"https://www.padilla.senate.gov","address":"331 Hart Senate Office Building Washington DC 20510"}]},
  {"id":{"bioguide":"S001150"},"name":{"first":"Adam","last":"Schiff"},
   "terms":[{"type":"rep","state":"CA","party":"Democrat"},{"type":"sen","state":"CA","party":"Democrat"}]},
  {"id":{"bioguide":"H001"},"name":{"first":"Hana","last":"One"},
   "terms":[{"type":"rep","state":"CA","party":"Republican","address":"1 House Office Building, Washington, DC 20515"}]},
  {"id":{"bioguide":"H002"},"name":{"first":"Hugo","last":"Two"},
   "terms":[{"type":"rep","state":"CA","party":"Libertarian"}]},
  {"id":{"bioguide":"H003"},"name":{"first":"Hal","last":"Three"},
   "terms":[{"type":"rep","state":"CA","party":"Democrat"}]},
  {"id":{"bioguide":"C001098"},"name":{"first":"Ted","last":"Cruz"},
   "terms":[{"type":"sen","state":"TX","party":"Republican"}]},
  {"id":{"bioguide":"MOVED"},"name":{"first":"Old","last":"Term"},
   "terms":[{"type":"sen","state":"CA","party":"Democrat"},{"type":"rep","state":"NV","party":"Democrat"}]}
]`

func TestParseState(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		wantOK  bool
	}{
		{"state before zip", "123 Main St, Sacramento, CA 95814", "CA", true},
		{"lowercase", "500 congress ave, austin, tx 78701", "TX", true},
		{"zip wins over later token", "10 OR Lane, Portland, OR 97201, USA", "OR", true},
		{"no zip uses right-most", "12 Elm St, Springfield, IL", "IL", true},
		{"zip with non-state prefix falls back", "1 Road, XX 12345, Boston MA", "MA", true},
		{"district of columbia", "1600 Pennsylvania Ave NW, Washington, DC 20500", "DC", true},
		{"no state", "somewhere over the rainbow", "", false},
		{"word boundary", "99 CALIFORNIA STREET", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseState(tt.address)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect(t *testing.T) {
	address := "123 Main St, Sacramento, CA 95814"
	reps := Select([]byte(fixture), "CA", address)

	require.Len(t, reps, 3)
	assert.Equal(t, "fed_P000145", reps[0].ID)
	assert.Equal(t, "Alex Padilla", reps[0].Name)
	assert.Equal(t, RoleSenator, reps[0].Role)
	assert.Equal(t, LevelFederal, reps[0].Level)
	assert.Equal(t, PartyDemocrat, reps[0].Party)
	assert.Equal(t, "https://www.padilla.senate.gov", reps[0].ContactURL)
	assert.Equal(t, "331 Hart Senate Office Building Washington DC 20510", reps[0].MailingAddress)
	assert.Equal(t, "https://theunitedstates.io/images/congress/225x275/P000145.jpg", reps[0].ImageURL)

	// current term decides the chamber
	assert.Equal(t, "fed_S001150", reps[1].ID)
	assert.Equal(t, RoleSenator, reps[1].Role)
	assert.Equal(t, "https://www.congress.gov/member/S001150", reps[1].ContactURL)
	assert.Equal(t, DefaultMailingAddress, reps[1].MailingAddress)

	house := []string{"fed_H001", "fed_H002", "fed_H003"}
	assert.Equal(t, house[len(address)%len(house)], reps[2].ID)
	assert.Equal(t, RoleRepresentative, reps[2].Role)
}

func TestPartyOf(t *testing.T) {
	assert.Equal(t, PartyDemocrat, partyOf("Democrat"))
	assert.Equal(t, PartyDemocrat, partyOf("Democratic-Farmer-Labor"))
	assert.Equal(t, PartyRepublican, partyOf("republican"))
	assert.Equal(t, PartyIndependent, partyOf("Libertarian"))
	assert.Equal(t, PartyIndependent, partyOf(""))
}

func TestLookupFallsBackAcrossMirrors(t *testing.T) {
	var hits int32
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer garbage.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer good.Close()

	var failed []string
	client := NewClient([]string{broken.URL, garbage.URL, good.URL}, time.Hour)
	client.MirrorFailed = func(url string, err error) { failed = append(failed, url) }

	reps, err := client.Lookup(context.Background(), "500 Congress Ave, Austin, TX 78701")
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "Ted Cruz", reps[0].Name)
	assert.Equal(t, []string{broken.URL, garbage.URL}, failed)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))

	// second lookup is served from cache
	_, err = client.Lookup(context.Background(), "123 Main St, Sacramento, CA 95814")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestLookupAllMirrorsDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer down.Close()

	client := NewClient([]string{down.URL, down.URL}, time.Hour)
	reps, err := client.Lookup(context.Background(), "123 Main St, Sacramento, CA 95814")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, reps)
}

func TestLookupWithoutState(t *testing.T) {
	client := NewClient([]string{"http://127.0.0.1:1"}, time.Hour)
	_, err := client.Lookup(context.Background(), "nowhere in particular")
	assert.ErrorIs(t, err, ErrNoState)
}

func TestFindByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	client := NewClient([]string{srv.URL}, time.Hour)

	rep, err := client.FindByID(context.Background(), "fed_C001098")
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, "Ted Cruz", rep.Name)

	rep, err = client.FindByID(context.Background(), "fed_UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, rep)

	rep, err = client.FindByID(context.Background(), "local_1")
	require.NoError(t, err)
	assert.Nil(t, rep)
}
