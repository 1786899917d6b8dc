// Package legislators looks up federal representatives from the public
// congress-legislators dataset.
package legislators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"
)

// DefaultMirrors are tried in order until one answers with a 2xx body.
var DefaultMirrors = []string{
	"https://unitedstates.github.io/congress-legislators/legislators-current.json",
	"https://raw.githubusercontent.com/unitedstates/congress-legislators/main/legislators-current.json",
	"https://cdn.jsdelivr.net/gh/unitedstates/congress-legislators@main/legislators-current.json",
}

var (
	ErrNoState     = errors.New("no state found in address")
	ErrUnavailable = errors.New("legislator dataset unavailable")
	ErrInvalidData = errors.New("legislator dataset is not a JSON array")
)

const datasetCacheKey = "legislators-current"

const (
	LevelFederal = "Federal"
	LevelState   = "State"
	LevelCounty  = "County"
	LevelLocal   = "Local"

	PartyDemocrat    = "Democrat"
	PartyRepublican  = "Republican"
	PartyIndependent = "Independent"

	RoleSenator        = "U.S. Senator"
	RoleRepresentative = "U.S. Representative"

	DefaultMailingAddress = "Washington, DC Office"
)

// Representative is one elected official as presented to a constituent.
type Representative struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Level          string `json:"level"`
	Party          string `json:"party"`
	ImageURL       string `json:"image_url"`
	ContactURL     string `json:"contact_url,omitempty"`
	MailingAddress string `json:"mailing_address"`
}

// Client fetches and caches the dataset.
type Client struct {
	Mirrors []string
	HTTP    *http.Client
	// MirrorFailed is called for every mirror that could not serve the dataset.
	MirrorFailed func(url string, err error)

	cache *cache.Cache
}

func NewClient(mirrors []string, cacheTTL time.Duration) *Client {
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	return &Client{
		Mirrors: mirrors,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache: cache.New(cacheTTL, 10*time.Minute),
	}
}

// Dataset returns the raw dataset, from cache when possible.
func (c *Client) Dataset(ctx context.Context) ([]byte, error) {
	if raw, ok := c.cache.Get(datasetCacheKey); ok {
		return raw.([]byte), nil
	}

	var lastErr error
	for _, url := range c.Mirrors {
		body, err := c.fetch(ctx, url)
		if err != nil {
			lastErr = err
			if c.MirrorFailed != nil {
				c.MirrorFailed(url, err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		c.cache.Set(datasetCacheKey, body, cache.DefaultExpiration)
		return body, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsArray() {
		return nil, ErrInvalidData
	}
	return body, nil
}

// Lookup returns the senators of the address's state plus one house member.
// An address without a recognisable state yields ErrNoState.
func (c *Client) Lookup(ctx context.Context, address string) ([]Representative, error) {
	state, ok := ParseState(address)
	if !ok {
		return nil, ErrNoState
	}

	raw, err := c.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return Select(raw, state, address), nil
}

// Select filters the dataset to one state. The house member is picked by
// len(address) modulo the number of house members.
func Select(raw []byte, state, address string) []Representative {
	var senators, house []gjson.Result

	gjson.ParseBytes(raw).ForEach(func(_, leg gjson.Result) bool {
		term := currentTerm(leg)
		if !term.Exists() || term.Get("state").String() != state {
			return true
		}
		switch term.Get("type").String() {
		case "sen":
			senators = append(senators, leg)
		case "rep":
			house = append(house, leg)
		}
		return true
	})

	reps := make([]Representative, 0, len(senators)+1)
	for _, leg := range senators {
		reps = append(reps, toRepresentative(leg))
	}
	if len(house) > 0 {
		reps = append(reps, toRepresentative(house[len(address)%len(house)]))
	}
	return reps
}

func currentTerm(leg gjson.Result) gjson.Result {
	terms := leg.Get("terms").Array()
	if len(terms) == 0 {
		return gjson.Result{}
	}
	return terms[len(terms)-1]
}

func toRepresentative(leg gjson.Result) Representative {
	term := currentTerm(leg)
	bioguide := leg.Get("id.bioguide").String()

	role := RoleRepresentative
	if term.Get("type").String() == "sen" {
		role = RoleSenator
	}

	contactURL := term.Get("url").String()
	if contactURL == "" {
		contactURL = "https://www.congress.gov/member/" + bioguide
	}
	mailing := term.Get("address").String()
	if mailing == "" {
		mailing = DefaultMailingAddress
	}

	return Representative{
		ID:             "fed_" + bioguide,
		Name:           leg.Get("name.first").String() + " " + leg.Get("name.last").String(),
		Role:           role,
		Level:          LevelFederal,
		Party:          partyOf(term.Get("party").String()),
		ImageURL:       "https://theunitedstates.io/images/congress/225x275/" + bioguide + ".jpg",
		ContactURL:     contactURL,
		MailingAddress: mailing,
	}
}

func partyOf(raw string) string {
	p := strings.ToLower(raw)
	switch {
	case strings.Contains(p, "democrat"):
		return PartyDemocrat
	case strings.Contains(p, "republican"):
		return PartyRepublican
	default:
		return PartyIndependent
	}
}

// FindByID returns the representative with the given id from the dataset.
func (c *Client) FindByID(ctx context.Context, id string) (*Representative, error) {
	bioguide, ok := strings.CutPrefix(id, "fed_")
	if !ok || bioguide == "" {
		return nil, nil
	}
	raw, err := c.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	var found *Representative
	gjson.ParseBytes(raw).ForEach(func(_, leg gjson.Result) bool {
		if leg.Get("id.bioguide").String() == bioguide {
			rep := toRepresentative(leg)
			found = &rep
			return false
		}
		return true
	})
	return found, nil
}
