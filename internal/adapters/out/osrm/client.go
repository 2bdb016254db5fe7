// Package osrm implements the route estimator port against an OSRM HTTP
// backend. The client speaks the /table, /trip, and /route services of the
// driving profile and degrades softly: any transport error, non-200 status,
// or non-Ok response code yields a nil result, which callers treat as "use
// the haversine fallback", never as a failure of the calling operation.
package osrm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/ports"
)

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

// Client is an OSRM-backed ports.RouteEstimator. Table responses are cached
// in memory; trip and route answers depend on courier positions and are not.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *tableCache
	log     *slog.Logger
}

var _ ports.RouteEstimator = (*Client)(nil)

// NewClient creates an OSRM client for the given base URL, for example
// "http://localhost:5000". A nil logger selects slog.Default.
func NewClient(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		cache: newTableCache(tableCacheTTL),
		log:   log,
	}
}

// GetTable requests the full duration/distance matrix between all points.
func (c *Client) GetTable(ctx context.Context, points []kernel.GeoPoint) *ports.TableResult {
	return c.getTable(ctx, points, nil, nil)
}

// GetTableSubset requests the matrix restricted to the given source and
// destination indices into points.
func (c *Client) GetTableSubset(
	ctx context.Context,
	points []kernel.GeoPoint,
	sources, destinations []int,
) *ports.TableResult {
	return c.getTable(ctx, points, sources, destinations)
}

func (c *Client) getTable(
	ctx context.Context,
	points []kernel.GeoPoint,
	sources, destinations []int,
) *ports.TableResult {
	if len(points) < 2 {
		return nil
	}

	key := tableCacheKey(points, sources, destinations)
	if cached := c.cache.get(key); cached != nil {
		return cached
	}

	url := c.baseURL + "/table/v1/driving/" + coordinatePath(points) +
		"?annotations=duration,distance"
	if len(sources) > 0 {
		url += "&sources=" + joinIndices(sources)
	}
	if len(destinations) > 0 {
		url += "&destinations=" + joinIndices(destinations)
	}

	var response struct {
		Code      string       `json:"code"`
		Durations [][]*float64 `json:"durations"`
		Distances [][]*float64 `json:"distances"`
	}
	if !c.getJSON(ctx, "/table", url, &response) {
		return nil
	}
	if response.Code != "Ok" {
		c.log.Warn("osrm /table returned non-ok code", "code", response.Code)
		return nil
	}

	result := &ports.TableResult{
		Durations: denseMatrix(response.Durations),
		Distances: denseMatrix(response.Distances),
	}
	c.cache.put(key, result)
	return result
}

// GetTrip solves the visiting order over the points. The first point is
// pinned as the start and the trip does not return to it.
func (c *Client) GetTrip(ctx context.Context, points []kernel.GeoPoint) *ports.TripResult {
	if len(points) < 2 {
		return nil
	}

	url := c.baseURL + "/trip/v1/driving/" + coordinatePath(points) +
		"?roundtrip=false&source=first&geometries=polyline&overview=false"

	var response struct {
		Code  string `json:"code"`
		Trips []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"trips"`
		Waypoints []struct {
			WaypointIndex int `json:"waypoint_index"`
		} `json:"waypoints"`
	}
	if !c.getJSON(ctx, "/trip", url, &response) {
		return nil
	}
	if response.Code != "Ok" || len(response.Trips) == 0 {
		c.log.Warn("osrm /trip returned non-ok code", "code", response.Code)
		return nil
	}

	order := make([]int, 0, len(response.Waypoints))
	for _, waypoint := range response.Waypoints {
		order = append(order, waypoint.WaypointIndex)
	}

	return &ports.TripResult{
		WaypointOrder: order,
		Duration:      response.Trips[0].Duration,
		Distance:      response.Trips[0].Distance,
	}
}

// GetRoute prices the exact coordinate sequence as given.
func (c *Client) GetRoute(ctx context.Context, points []kernel.GeoPoint) *ports.RouteResult {
	if len(points) < 2 {
		return nil
	}

	url := c.baseURL + "/route/v1/driving/" + coordinatePath(points) + "?overview=false"

	var response struct {
		Code   string `json:"code"`
		Routes []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"routes"`
	}
	if !c.getJSON(ctx, "/route", url, &response) {
		return nil
	}
	if response.Code != "Ok" || len(response.Routes) == 0 {
		c.log.Warn("osrm /route returned non-ok code", "code", response.Code)
		return nil
	}

	return &ports.RouteResult{
		Duration: response.Routes[0].Duration,
		Distance: response.Routes[0].Distance,
	}
}

// IsAvailable probes the backend with a short fixed route request.
func (c *Client) IsAvailable(ctx context.Context) bool {
	url := c.baseURL + "/route/v1/driving/10.180000,36.800000;10.190000,36.810000?overview=false"

	var response struct {
		Code string `json:"code"`
	}
	return c.getJSON(ctx, "/route", url, &response) && response.Code == "Ok"
}

// SweepRouteCache removes expired table entries and reports how many were
// dropped. Invoked periodically by the background job manager.
func (c *Client) SweepRouteCache() int {
	return c.cache.sweepExpired()
}

// getJSON performs the GET request and decodes the body into out. Returns
// false on any transport, status, or decoding problem.
func (c *Client) getJSON(ctx context.Context, service, url string, out any) bool {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn("osrm request build failed", "service", service, "error", err)
		return false
	}

	response, err := c.http.Do(request)
	if err != nil {
		c.log.Warn("osrm call failed", "service", service, "error", err)
		return false
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		c.log.Warn("osrm returned non-200 status",
			"service", service, "status", response.StatusCode)
		return false
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		c.log.Warn("osrm body read failed", "service", service, "error", err)
		return false
	}
	if err = json.Unmarshal(body, out); err != nil {
		c.log.Warn("osrm body decode failed", "service", service, "error", err)
		return false
	}

	return true
}

// coordinatePath renders points as the OSRM path segment. OSRM expects
// lon,lat pairs, the reverse of the domain's lat,lon convention.
func coordinatePath(points []kernel.GeoPoint) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.FormatFloat(p.Lon(), 'f', 6, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Lat(), 'f', 6, 64))
	}
	return sb.String()
}

func joinIndices(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, index := range indices {
		parts = append(parts, strconv.Itoa(index))
	}
	return strings.Join(parts, ";")
}

// denseMatrix converts the wire matrix to floats. Unreachable pairs arrive
// as JSON null and become MaxFloat64 so cost comparisons push them last.
func denseMatrix(raw [][]*float64) [][]float64 {
	matrix := make([][]float64, len(raw))
	for i, row := range raw {
		matrix[i] = make([]float64, len(row))
		for j, value := range row {
			if value == nil {
				matrix[i][j] = math.MaxFloat64
				continue
			}
			matrix[i][j] = *value
		}
	}
	return matrix
}
