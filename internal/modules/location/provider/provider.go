package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

const snapshotCachePrefix = "snapshot:"

// SnapshotProvider fetches the current public profile state for a place.
// Missing or partial upstream data degrades to zero-valued snapshot fields;
// the engine treats those as "no signal".
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, placeID string) (engine.Snapshot, error)
}

// placeDetails mirrors the subset of the place details payload we consume.
type placeDetails struct {
	Result struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Website          string `json:"website"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int    `json:"user_ratings_total"`
		Types            []string `json:"types"`
		PriceLevel       int    `json:"price_level"`
		BusinessStatus   string `json:"business_status"`
		OpeningHours     *struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
	Status string `json:"status"`
}

type placesProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	redis   *redis.Client
	ttl     time.Duration
}

func NewPlacesProvider(baseURL, apiKey string, redisClient *redis.Client, ttl time.Duration) SnapshotProvider {
	return &placesProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		redis:   redisClient,
		ttl:     ttl,
	}
}

func (p *placesProvider) GetSnapshot(ctx context.Context, placeID string) (engine.Snapshot, error) {
	if cached, ok := p.fromCache(ctx, placeID); ok {
		return cached, nil
	}

	snap, err := p.fetch(ctx, placeID)
	if err != nil {
		// Upstream being down must not block task generation; the engine
		// handles an empty snapshot gracefully.
		log.Printf("snapshot: fetch failed for place %s: %v", placeID, err)
		return engine.Snapshot{}, nil
	}

	p.toCache(ctx, placeID, snap)
	return snap, nil
}

func (p *placesProvider) fetch(ctx context.Context, placeID string) (engine.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/details/json?place_id=%s&key=%s",
		p.baseURL, url.QueryEscape(placeID), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return engine.Snapshot{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return engine.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Snapshot{}, fmt.Errorf("place details returned status %d", resp.StatusCode)
	}

	var details placeDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return engine.Snapshot{}, fmt.Errorf("decode place details: %w", err)
	}
	if details.Status != "OK" {
		return engine.Snapshot{}, fmt.Errorf("place details status %q", details.Status)
	}

	r := details.Result
	return engine.Snapshot{
		Name:           r.Name,
		Address:        r.FormattedAddress,
		HasHours:       r.OpeningHours != nil && len(r.OpeningHours.WeekdayText) > 0,
		Website:        r.Website,
		Rating:         r.Rating,
		ReviewCount:    r.UserRatingsTotal,
		PhotoCount:     len(r.Photos),
		Types:          r.Types,
		PriceLevel:     r.PriceLevel,
		BusinessStatus: r.BusinessStatus,
	}, nil
}

func (p *placesProvider) fromCache(ctx context.Context, placeID string) (engine.Snapshot, bool) {
	if p.redis == nil {
		return engine.Snapshot{}, false
	}
	raw, err := p.redis.Get(ctx, snapshotCachePrefix+placeID).Bytes()
	if err != nil {
		return engine.Snapshot{}, false
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return engine.Snapshot{}, false
	}
	return snap, true
}

func (p *placesProvider) toCache(ctx context.Context, placeID string, snap engine.Snapshot) {
	if p.redis == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := p.redis.Set(ctx, snapshotCachePrefix+placeID, raw, p.ttl).Err(); err != nil {
		log.Printf("snapshot: cache write failed for place %s: %v", placeID, err)
	}
}
